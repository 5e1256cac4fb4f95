package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reapr-io/reapr/internal/resource"
)

func TestRender_VpcTokenIsUppercase(t *testing.T) {
	r := New("prod-cluster", "us-east-1", []*resource.Resource{
		{Type: resource.TypeVpc, ID: "vpc-1"},
	})

	text := r.Render()
	assert.Contains(t, text, "- VPC: vpc-1\n")
	assert.NotContains(t, text, "- Vpc:")
}

func TestRender_HeaderAndList(t *testing.T) {
	r := New("prod-cluster", "eu-west-1", []*resource.Resource{
		{Type: resource.TypeInstance, ID: "i-1"},
		{Type: resource.TypeSecurityGroup, ID: "sg-1"},
	})

	text := r.Render()
	assert.Contains(t, text, "Cluster: prod-cluster\n")
	assert.Contains(t, text, "Region: eu-west-1\n")
	assert.Contains(t, text, "Total: 2\n")
	assert.Contains(t, text, "Uncleaned Resources:\n- Instance: i-1\n- SecurityGroup: sg-1\n")
	assert.True(t, strings.HasSuffix(text, "\n\n"), "list must end with a blank line")
	assert.NotEmpty(t, r.RunID)
}

func TestRoundTrip(t *testing.T) {
	residue := []*resource.Resource{
		{Type: resource.TypeInstance, ID: "i-1"},
		{Type: resource.TypeLoadBalancer, ID: "arn:aws:elasticloadbalancing:us-east-1:123:loadbalancer/net/x/abc"},
		{Type: resource.TypeElasticIP, ID: "eipalloc-1"},
		{Type: resource.TypeVpc, ID: "vpc-1"},
	}
	r := New("prod-cluster", "us-east-1", residue)

	cluster, err := ParseReader(strings.NewReader(r.Render()))
	require.NoError(t, err)

	assert.Equal(t, "prod-cluster", cluster.Name)
	assert.Equal(t, "us-east-1", cluster.Region)
	require.Len(t, cluster.Resources, len(residue))
	for i, res := range cluster.Resources {
		assert.Equal(t, residue[i].Type, res.Type)
		assert.Equal(t, residue[i].ID, res.ID)
		assert.Equal(t, resource.StateDiscovered, res.State)
		assert.Equal(t, "us-east-1", res.Region)
		assert.Equal(t, "prod-cluster", res.ClusterTag)
	}
}

func TestWriteAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup-report.txt")
	r := New("prod-cluster", "us-east-1", []*resource.Resource{
		{Type: resource.TypeNatGateway, ID: "nat-1"},
	})
	require.NoError(t, r.Write(path))

	cluster, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, cluster.Resources, 1)
	assert.Equal(t, resource.TypeNatGateway, cluster.Resources[0].Type)
	assert.Equal(t, "nat-1", cluster.Resources[0].ID)
}

func TestParseReader_UnknownHeaderLinesIgnored(t *testing.T) {
	input := strings.Join([]string{
		"Cluster: prod-cluster",
		"Run: 0b6a1d9e-0000-0000-0000-000000000000",
		"Some future header: value",
		"Total: 1",
		"",
		"Uncleaned Resources:",
		"- Subnet: subnet-1",
		"",
	}, "\n")

	cluster, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cluster.Resources, 1)
	assert.Equal(t, resource.TypeSubnet, cluster.Resources[0].Type)
}

func TestParseReader_BlankLineEndsList(t *testing.T) {
	input := strings.Join([]string{
		"Cluster: prod-cluster",
		"Uncleaned Resources:",
		"- Instance: i-1",
		"",
		"Notes: anything after the blank line is not resource data",
		"- Instance: i-should-not-parse",
	}, "\n")

	cluster, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cluster.Resources, 1)
	assert.Equal(t, "i-1", cluster.Resources[0].ID)
}

func TestParseReader_MissingMarker(t *testing.T) {
	_, err := ParseReader(strings.NewReader("Cluster: prod-cluster\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Uncleaned Resources:")
}

func TestParseReader_UnknownTokenIsError(t *testing.T) {
	input := "Uncleaned Resources:\n- Volume: vol-1\n"
	_, err := ParseReader(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource type token")
}

func TestParseReader_MalformedLines(t *testing.T) {
	for _, line := range []string{
		"Instance: i-1",  // missing bullet
		"- Instance i-1", // missing separator
		"- Instance: ",   // missing id
	} {
		input := "Uncleaned Resources:\n" + line + "\n"
		_, err := ParseReader(strings.NewReader(input))
		assert.Error(t, err, "line %q should not parse", line)
	}
}

func TestParseReader_AllTokensRoundTrip(t *testing.T) {
	for typ, token := range typeToken {
		input := "Uncleaned Resources:\n- " + token + ": id-1\n"
		cluster, err := ParseReader(strings.NewReader(input))
		require.NoError(t, err, "token %q", token)
		require.Len(t, cluster.Resources, 1)
		assert.Equal(t, typ, cluster.Resources[0].Type)
	}
}

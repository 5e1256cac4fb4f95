package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_InstanceBeforeSubnet(t *testing.T) {
	cluster := &Cluster{
		Name: "test",
		Resources: []*Resource{
			{Type: TypeSubnet, ID: "subnet-1", State: StateDiscovered},
			{Type: TypeInstance, ID: "i-1", State: StateDiscovered},
		},
	}

	groups, err := Order(cluster)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, TypeInstance, groups[0].Type)
	assert.Equal(t, TypeSubnet, groups[1].Type)
}

func TestOrder_FullTypeOrder(t *testing.T) {
	cluster := &Cluster{Name: "test"}
	// Insert in scrambled order; one resource per type.
	for _, entry := range []struct {
		t  Type
		id string
	}{
		{TypeVpc, "vpc-1"},
		{TypeKeyPair, "kp-1"},
		{TypeSubnet, "subnet-1"},
		{TypeInstance, "i-1"},
		{TypeNatGateway, "nat-1"},
		{TypeLoadBalancer, "lb-1"},
		{TypeElasticIP, "eipalloc-1"},
		{TypeRouteTable, "rtb-1"},
		{TypeSecurityGroup, "sg-1"},
		{TypeInternetGateway, "igw-1"},
		{TypeNetworkInterface, "eni-1"},
	} {
		cluster.Resources = append(cluster.Resources, &Resource{Type: entry.t, ID: entry.id})
	}

	groups, err := Order(cluster)
	require.NoError(t, err)
	require.Len(t, groups, len(DeletionOrder))

	for i, group := range groups {
		assert.Equal(t, DeletionOrder[i], group.Type)
	}
}

func TestOrder_SortsWithinGroupByID(t *testing.T) {
	cluster := &Cluster{
		Name: "test",
		Resources: []*Resource{
			{Type: TypeInstance, ID: "i-ccc"},
			{Type: TypeInstance, ID: "i-aaa"},
			{Type: TypeInstance, ID: "i-bbb"},
		},
	}

	groups, err := Order(cluster)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	var ids []string
	for _, res := range groups[0].Resources {
		ids = append(ids, res.ID)
	}
	assert.Equal(t, []string{"i-aaa", "i-bbb", "i-ccc"}, ids)
}

func TestOrder_Deterministic(t *testing.T) {
	cluster := &Cluster{
		Name: "test",
		Resources: []*Resource{
			{Type: TypeVpc, ID: "vpc-1"},
			{Type: TypeSecurityGroup, ID: "sg-2"},
			{Type: TypeSecurityGroup, ID: "sg-1"},
			{Type: TypeInstance, ID: "i-1"},
		},
	}

	first, err := Order(cluster)
	require.NoError(t, err)
	second, err := Order(cluster)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOrder_UnknownTypeIsFatal(t *testing.T) {
	cluster := &Cluster{
		Name: "test",
		Resources: []*Resource{
			{Type: Type("Volume"), ID: "vol-1"},
		},
	}

	_, err := Order(cluster)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deletion order entry")
}

func TestOrder_EmptyCluster(t *testing.T) {
	groups, err := Order(&Cluster{Name: "test"})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestResource_Terminal(t *testing.T) {
	assert.False(t, Resource{State: StateDiscovered}.Terminal())
	assert.False(t, Resource{State: StateDeletionRequested}.Terminal())
	assert.True(t, Resource{State: StateDeleted}.Terminal())
	assert.True(t, Resource{State: StateFailed}.Terminal())
	assert.True(t, Resource{State: StateOrphaned}.Terminal())
}

// Package report persists the residue of a reclamation pass as a
// line-oriented text file and parses such files back into a cluster so a
// later pass can resume where the previous one gave up.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reapr-io/reapr/internal/resource"
)

// marker opens the resource list. Everything before it is header material.
const marker = "Uncleaned Resources:"

// typeToken maps a resource type to its report token. Tokens follow the type
// name except Vpc, which reports as VPC. Token and type tables must stay
// symmetric or round-tripping breaks.
var typeToken = map[resource.Type]string{
	resource.TypeInstance:         "Instance",
	resource.TypeLoadBalancer:     "LoadBalancer",
	resource.TypeNetworkInterface: "NetworkInterface",
	resource.TypeSecurityGroup:    "SecurityGroup",
	resource.TypeSubnet:           "Subnet",
	resource.TypeRouteTable:       "RouteTable",
	resource.TypeInternetGateway:  "InternetGateway",
	resource.TypeElasticIP:        "ElasticIP",
	resource.TypeNatGateway:       "NatGateway",
	resource.TypeKeyPair:          "KeyPair",
	resource.TypeVpc:              "VPC",
}

var tokenType = func() map[string]resource.Type {
	m := make(map[string]resource.Type, len(typeToken))
	for t, token := range typeToken {
		m[token] = t
	}
	return m
}()

// Report is the immutable artifact of one pass. Once written it is consumed
// as-is, never mutated in place.
type Report struct {
	ClusterName string
	Region      string
	RunID       string
	GeneratedAt time.Time
	Residue     []*resource.Resource
}

// New builds a report over the residue of a pass. The residue sequence is
// recorded in the order given (the deletion order, for readability).
func New(clusterName, region string, residue []*resource.Resource) *Report {
	return &Report{
		ClusterName: clusterName,
		Region:      region,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Residue:     residue,
	}
}

// Render produces the full report text: a human-readable header, the marker
// line, one `- <Type>: <id>` line per resource, and a terminating blank line.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cluster: %s\n", r.ClusterName)
	if r.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", r.Region)
	}
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total: %d\n", len(r.Residue))
	b.WriteString("\n")
	b.WriteString(marker + "\n")
	for _, res := range r.Residue {
		fmt.Fprintf(&b, "- %s: %s\n", typeToken[res.Type], res.ID)
	}
	b.WriteString("\n")
	return b.String()
}

// Write persists the report.
func (r *Report) Write(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Parse reads a report file back into a cluster ready to re-enter the
// pipeline: every recorded resource comes back in state Discovered.
func Parse(path string) (*resource.Cluster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader is the line-oriented parser behind Parse. Unknown lines before
// the marker are ignored; known header fields (Cluster, Region) are picked up
// when present. The list ends at the first blank line after it; anything
// after that is ignored, so trailing sections added later stay harmless.
func ParseReader(r io.Reader) (*resource.Cluster, error) {
	cluster := &resource.Cluster{}
	scanner := bufio.NewScanner(r)
	inList := false
	sawMarker := false

	for scanner.Scan() {
		line := scanner.Text()

		if !inList {
			switch {
			case strings.TrimSpace(line) == marker:
				inList = true
				sawMarker = true
			case strings.HasPrefix(line, "Cluster: "):
				cluster.Name = strings.TrimSpace(strings.TrimPrefix(line, "Cluster: "))
			case strings.HasPrefix(line, "Region: "):
				cluster.Region = strings.TrimSpace(strings.TrimPrefix(line, "Region: "))
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		res, err := parseResourceLine(line)
		if err != nil {
			return nil, err
		}
		res.Region = cluster.Region
		res.ClusterTag = cluster.Name
		cluster.Resources = append(cluster.Resources, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	if !sawMarker {
		return nil, fmt.Errorf("report has no %q section", marker)
	}

	return cluster, nil
}

func parseResourceLine(line string) (*resource.Resource, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "- ")
	if !ok {
		return nil, fmt.Errorf("malformed resource line: %q", line)
	}
	token, id, ok := strings.Cut(rest, ": ")
	if !ok {
		return nil, fmt.Errorf("malformed resource line: %q", line)
	}
	t, ok := tokenType[strings.TrimSpace(token)]
	if !ok {
		return nil, fmt.Errorf("unknown resource type token: %q", token)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("resource line missing id: %q", line)
	}
	return &resource.Resource{
		Type:        t,
		ID:          id,
		DisplayName: id,
		State:       resource.StateDiscovered,
	}, nil
}

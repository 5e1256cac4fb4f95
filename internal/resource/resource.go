package resource

import "fmt"

// Type identifies a kind of cloud resource handled by the reclamation
// pipeline.
type Type string

const (
	TypeInstance         Type = "Instance"
	TypeLoadBalancer     Type = "LoadBalancer"
	TypeNetworkInterface Type = "NetworkInterface"
	TypeSecurityGroup    Type = "SecurityGroup"
	TypeSubnet           Type = "Subnet"
	TypeRouteTable       Type = "RouteTable"
	TypeInternetGateway  Type = "InternetGateway"
	TypeElasticIP        Type = "ElasticIP"
	TypeNatGateway       Type = "NatGateway"
	TypeKeyPair          Type = "KeyPair"
	TypeVpc              Type = "Vpc"
)

// State tracks a resource through the deletion pipeline. It only moves
// forward: Discovered -> DeletionRequested -> {Deleted | Failed}.
// Orphaned is terminal and set only by the verifier when a delete call
// reported success but the resource kept showing up past the poll budget.
type State string

const (
	StateDiscovered        State = "Discovered"
	StateDeletionRequested State = "DeletionRequested"
	StateDeleted           State = "Deleted"
	StateFailed            State = "Failed"
	StateOrphaned          State = "Orphaned"
)

// Resource identifies one cloud resource. ID is unique within (Type, Region).
type Resource struct {
	Type        Type
	ID          string
	Region      string
	ClusterTag  string
	DisplayName string
	State       State
}

func (r Resource) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// Terminal reports whether the resource has reached a final state.
func (r Resource) Terminal() bool {
	switch r.State {
	case StateDeleted, StateFailed, StateOrphaned:
		return true
	}
	return false
}

// Cluster is the reconstructed aggregate of every resource that belongs to a
// logical cluster. It is rebuilt on every run, either by live discovery or
// from a previously written residue report.
type Cluster struct {
	Name      string
	Region    string
	Resources []*Resource
}

// ByType groups the cluster's resources keyed by resource type.
func (c *Cluster) ByType() map[Type][]*Resource {
	groups := make(map[Type][]*Resource)
	for _, res := range c.Resources {
		groups[res.Type] = append(groups[res.Type], res)
	}
	return groups
}

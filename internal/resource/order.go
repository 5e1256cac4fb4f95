package resource

import (
	"fmt"
	"sort"
)

// DeletionOrder is the fixed type-level deletion order. A type earlier in the
// list must be fully processed before any later type is attempted: an
// instance holds ENIs inside a subnet, a load balancer holds subnet
// attachments, a NAT gateway pins an elastic IP, and the VPC refuses to go
// while anything above still references it. KeyPair has no dependency on the
// VPC at all and is ordered last only so reports read sensibly.
var DeletionOrder = []Type{
	TypeInstance,
	TypeLoadBalancer,
	TypeNetworkInterface,
	TypeSecurityGroup,
	TypeSubnet,
	TypeNatGateway,
	TypeElasticIP,
	TypeRouteTable,
	TypeInternetGateway,
	TypeVpc,
	TypeKeyPair,
}

var orderIndex = func() map[Type]int {
	idx := make(map[Type]int, len(DeletionOrder))
	for i, t := range DeletionOrder {
		idx[t] = i
	}
	return idx
}()

// Group is one deletion stage: all resources of a single type. Resources
// within a group carry no ordering dependency on each other and may be
// deleted in parallel.
type Group struct {
	Type      Type
	Resources []*Resource
}

// Order produces the deterministic deletion sequence for a cluster: groups
// follow DeletionOrder, resources within a group sort by ascending ID. A
// resource type missing from the order table means the table is out of date,
// which is a structural error, not something to retry around.
func Order(cluster *Cluster) ([]Group, error) {
	for _, res := range cluster.Resources {
		if _, ok := orderIndex[res.Type]; !ok {
			return nil, fmt.Errorf("resource type %q has no deletion order entry", res.Type)
		}
	}

	byType := cluster.ByType()
	var groups []Group
	for _, t := range DeletionOrder {
		resources := byType[t]
		if len(resources) == 0 {
			continue
		}
		sort.Slice(resources, func(i, j int) bool {
			return resources[i].ID < resources[j].ID
		})
		groups = append(groups, Group{Type: t, Resources: resources})
	}
	return groups, nil
}

// Package discovery reconstructs a cluster aggregate by querying the cloud
// provider for everything tagged or named after the cluster identifier.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/reapr-io/reapr/internal/logging"
	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// Discoverer enumerates cluster resources type by type.
type Discoverer struct {
	provider provider.CloudProvider
}

func New(p provider.CloudProvider) *Discoverer {
	return &Discoverer{provider: p}
}

// Discover queries every known resource type for matches against the cluster
// identifier. A type whose query fails is skipped and reported as a warning;
// an incomplete reclamation plan still beats none. Zero matches for a type is
// normal, not an error.
func (d *Discoverer) Discover(ctx context.Context, clusterID, region string) (*resource.Cluster, []string, error) {
	if strings.TrimSpace(clusterID) == "" {
		return nil, nil, fmt.Errorf("cluster identifier must not be empty")
	}

	cluster := &resource.Cluster{Name: clusterID, Region: region}
	var warnings []string

	for _, t := range resource.DeletionOrder {
		found, err := d.provider.List(ctx, t, clusterID, region)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: discovery unknown: %v", t, err))
			logging.Warn("resource type discovery failed, excluding from plan",
				"type", t, "cluster", clusterID, "error", err)
			continue
		}
		logging.Debug("discovered resources", "type", t, "count", len(found))
		cluster.Resources = append(cluster.Resources, found...)
	}

	return cluster, warnings, nil
}

// DiscoverVpc enumerates everything attached to one VPC, regardless of
// tagging, for the forced VPC teardown path. The VPC itself is included.
func (d *Discoverer) DiscoverVpc(ctx context.Context, vpcID, region string) (*resource.Cluster, []string, error) {
	if strings.TrimSpace(vpcID) == "" {
		return nil, nil, fmt.Errorf("vpc id must not be empty")
	}

	cluster := &resource.Cluster{Name: vpcID, Region: region}
	var warnings []string

	for _, t := range resource.DeletionOrder {
		found, err := d.provider.ListByVpc(ctx, t, vpcID, region)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: discovery unknown: %v", t, err))
			logging.Warn("resource type discovery failed, excluding from plan",
				"type", t, "vpc", vpcID, "error", err)
			continue
		}
		logging.Debug("discovered vpc-attached resources", "type", t, "count", len(found))
		cluster.Resources = append(cluster.Resources, found...)
	}

	return cluster, warnings, nil
}

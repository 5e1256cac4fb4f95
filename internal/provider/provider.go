package provider

import (
	"context"

	"github.com/reapr-io/reapr/internal/resource"
)

// CloudProvider is the narrow boundary to the cloud account. Every call is
// idempotent from the caller's point of view: a NotFound answer to a delete
// or existence check is success, never an error.
type CloudProvider interface {
	// Name returns the provider identifier used for registration.
	Name() string

	// List enumerates resources of one type whose tags or names match the
	// cluster identifier. Zero matches is an empty slice, not an error.
	List(ctx context.Context, t resource.Type, clusterTag, region string) ([]*resource.Resource, error)

	// ListByVpc enumerates resources of one type attached to the given VPC,
	// regardless of tagging. Used by the VPC-scoped forced teardown.
	ListByVpc(ctx context.Context, t resource.Type, vpcID, region string) ([]*resource.Resource, error)

	// Exists runs a targeted existence check for a single resource.
	Exists(ctx context.Context, res *resource.Resource) (bool, error)

	// Delete issues the provider's delete call for a single resource.
	Delete(ctx context.Context, res *resource.Resource) error

	// StripSecurityGroupRules revokes all ingress and egress rules on a
	// security group so that cross-group rule references stop blocking its
	// deletion. Idempotent.
	StripSecurityGroupRules(ctx context.Context, res *resource.Resource) error
}

package engine

import (
	"context"
	"sync"
	"time"

	"github.com/reapr-io/reapr/internal/logging"
	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// Default verification poll settings for resource types whose deletion is
// asynchronous on the provider side.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollBudget   = 12
)

// asyncDeletionTypes are the types with provider-side deletion latency. They
// get the full poll budget; every other type is checked once, immediately.
var asyncDeletionTypes = map[resource.Type]bool{
	resource.TypeLoadBalancer: true,
	resource.TypeNatGateway:   true,
	resource.TypeInstance:     true,
}

// Verifier confirms convergence after an executor pass by re-running a
// targeted existence check per resource.
type Verifier struct {
	provider     provider.CloudProvider
	pollInterval time.Duration
	pollBudget   int
	parallelism  int
}

// NewVerifier builds a verifier. Non-positive arguments select defaults.
func NewVerifier(p provider.CloudProvider, pollInterval time.Duration, pollBudget, parallelism int) *Verifier {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if pollBudget <= 0 {
		pollBudget = DefaultPollBudget
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Verifier{
		provider:     p,
		pollInterval: pollInterval,
		pollBudget:   pollBudget,
		parallelism:  parallelism,
	}
}

// Verify returns the residue: every resource of the cluster that is still
// present after the deletion pass. A resource whose delete call succeeded but
// which outlives its poll budget moves to Orphaned; resources already marked
// Failed stay Failed and join the residue only if they still exist.
func (v *Verifier) Verify(ctx context.Context, cluster *resource.Cluster) []*resource.Resource {
	present := make([]bool, len(cluster.Resources))
	sem := make(chan struct{}, v.parallelism)
	var wg sync.WaitGroup

	for i, res := range cluster.Resources {
		wg.Add(1)
		go func(i int, res *resource.Resource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			present[i] = v.stillExists(ctx, res)
		}(i, res)
	}
	wg.Wait()

	var residue []*resource.Resource
	for i, res := range cluster.Resources {
		if !present[i] {
			continue
		}
		if res.State != resource.StateFailed {
			res.State = resource.StateOrphaned
			logging.Warn("resource outlived its deletion",
				"type", res.Type, "id", res.ID)
		}
		residue = append(residue, res)
	}
	return residue
}

// stillExists polls a single resource until it disappears or the budget runs
// out. Types with synchronous deletion get exactly one check.
func (v *Verifier) stillExists(ctx context.Context, res *resource.Resource) bool {
	budget := 1
	if asyncDeletionTypes[res.Type] {
		budget = v.pollBudget
	}

	for attempt := 0; attempt < budget; attempt++ {
		exists, err := v.provider.Exists(ctx, res)
		if err != nil {
			if provider.IsNotFound(err) {
				return false
			}
			// An unanswerable check counts as still-present so the
			// resource lands in the residue report rather than being
			// silently dropped.
			logging.Warn("existence check failed",
				"type", res.Type, "id", res.ID, "error", err)
			return true
		}
		if !exists {
			return false
		}

		if attempt < budget-1 {
			select {
			case <-ctx.Done():
				return true
			case <-time.After(v.pollInterval):
			}
		}
	}
	return true
}

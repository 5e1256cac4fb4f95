package engine

import (
	"context"
	"fmt"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// Summary is the terminal accounting of one reclamation pass.
type Summary struct {
	Results  []Result
	Residue  []*resource.Resource
	Deleted  int
	Failed   int
	Orphaned int
}

// Converged reports whether nothing belonging to the cluster remains.
func (s *Summary) Converged() bool {
	return len(s.Residue) == 0
}

// Pipeline ties ordering, execution and verification together with strict
// phase separation: ordering completes before execution starts, execution
// before verification. The cluster itself comes from discovery or from a
// parsed residue report; the caller picks the input mode.
type Pipeline struct {
	Executor *Executor
	Verifier *Verifier
}

// NewPipeline builds a pipeline over one provider with the given policies.
func NewPipeline(p provider.CloudProvider, policy *RetryPolicy, parallelism int) *Pipeline {
	return &Pipeline{
		Executor: NewExecutor(p, policy, parallelism),
		Verifier: NewVerifier(p, 0, 0, parallelism),
	}
}

// Run drives the cluster's resources through ordering, deletion and
// convergence verification. Only a structural error (an unknown resource
// type) is fatal; per-resource failures end up in the residue instead.
func (p *Pipeline) Run(ctx context.Context, cluster *resource.Cluster) (*Summary, error) {
	groups, err := resource.Order(cluster)
	if err != nil {
		return nil, fmt.Errorf("ordering failed: %w", err)
	}

	results := p.Executor.Execute(ctx, groups)
	residue := p.Verifier.Verify(ctx, cluster)

	summary := &Summary{Results: results, Residue: residue}
	for _, res := range cluster.Resources {
		switch res.State {
		case resource.StateDeleted:
			summary.Deleted++
		case resource.StateFailed:
			summary.Failed++
		case resource.StateOrphaned:
			summary.Orphaned++
		}
	}
	return summary, nil
}

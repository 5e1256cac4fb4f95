package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/reapr-io/reapr/internal/config"
	"github.com/reapr-io/reapr/internal/engine"
	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/report"
	"github.com/reapr-io/reapr/internal/resource"
	awsprovider "github.com/reapr-io/reapr/providers/aws"
)

// newRegistry builds the provider registry with the built-in providers.
// Tests swap it out to run commands against an in-memory provider.
var newRegistry = func() *provider.Registry {
	registry := provider.NewRegistry()
	registry.Register(awsprovider.New())
	return registry
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(regionFlag string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if regionFlag != "" {
		cfg.Region = regionFlag
	}
	return cfg, nil
}

// errResidue signals an incomplete reclamation; the process exits non-zero
// but the residue report already carries the details.
type errResidue struct {
	count int
	path  string
}

func (e *errResidue) Error() string {
	return fmt.Sprintf("%d resource(s) could not be reclaimed; see %s", e.count, e.path)
}

// printWarnings surfaces partial-discovery warnings without failing the run.
func printWarnings(out io.Writer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
}

// printPlan renders the ordered deletion plan. Dry runs stop here: same
// ordering output as a real run, zero delete calls.
func printPlan(out io.Writer, groups []resource.Group) {
	total := 0
	for _, group := range groups {
		total += len(group.Resources)
	}
	fmt.Fprintf(out, "Deletion plan (%d resources):\n", total)
	for _, group := range groups {
		for _, res := range group.Resources {
			fmt.Fprintf(out, "- %s: %s\n", group.Type, res.ID)
		}
	}
}

// runReclamation drives ordering, execution, verification and reporting over
// an already-reconstructed cluster.
func runReclamation(ctx context.Context, p provider.CloudProvider, cfg *config.Config, cluster *resource.Cluster, dryRun bool, reportPath string, out io.Writer) error {
	groups, err := resource.Order(cluster)
	if err != nil {
		return err
	}

	if dryRun {
		printPlan(out, groups)
		fmt.Fprintln(out, "dry run: no resources were deleted")
		return nil
	}

	policy := &engine.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.Base(),
		MaxDelay:    cfg.Retry.Max(),
	}
	pipeline := engine.NewPipeline(p, policy, cfg.Parallelism)
	pipeline.Verifier = engine.NewVerifier(p,
		cfg.Verify.Interval(), cfg.Verify.PollBudget, cfg.Parallelism)
	pipeline.Executor.OnEvent(func(event engine.Event) {
		switch event.Status {
		case "deleted":
			fmt.Fprintf(out, "deleted %s\n", event.Resource)
		case "failed":
			fmt.Fprintf(out, "failed  %s: %v\n", event.Resource, event.Err)
		}
	})

	summary, err := pipeline.Run(ctx, cluster)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d deleted, %d failed, %d orphaned\n",
		summary.Deleted, summary.Failed, summary.Orphaned)

	if summary.Converged() {
		fmt.Fprintln(out, "cluster reclaimed: no residue")
		return nil
	}

	rep := report.New(cluster.Name, cluster.Region, summary.Residue)
	if err := rep.Write(reportPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "residue report written to %s\n", reportPath)
	return &errResidue{count: len(summary.Residue), path: reportPath}
}

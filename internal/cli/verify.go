package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reapr-io/reapr/internal/discovery"
	"github.com/reapr-io/reapr/internal/engine"
	"github.com/reapr-io/reapr/internal/report"
)

var (
	verifyRegion     string
	verifyReportPath string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <cluster>",
	Short: "Check whether a cluster has fully converged",
	Long: `Runs discovery and the convergence check without deleting anything.
Whatever is still present becomes the residue report, exactly as after a
cleanup pass. Useful after a cleanup that ran elsewhere, or to confirm an
earlier report has been worked off.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyRegion, "region", "", "Cloud region (overrides config)")
	verifyCmd.Flags().StringVar(&verifyReportPath, "report", "", "Residue report path (overrides config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(verifyRegion)
	if err != nil {
		return err
	}
	if verifyReportPath != "" {
		cfg.ReportPath = verifyReportPath
	}

	p, err := newRegistry().Get(cfg.Provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cluster, warnings, err := discovery.New(p).Discover(ctx, args[0], cfg.Region)
	if err != nil {
		return err
	}
	printWarnings(out, warnings)

	if len(cluster.Resources) == 0 {
		fmt.Fprintf(out, "cluster %q has converged: nothing discoverable\n", cluster.Name)
		return nil
	}

	// Everything discovered just now is present; one existence pass keeps
	// the output consistent with the post-cleanup verifier.
	verifier := engine.NewVerifier(p, cfg.Verify.Interval(), 1, cfg.Parallelism)
	residue := verifier.Verify(ctx, cluster)
	if len(residue) == 0 {
		fmt.Fprintf(out, "cluster %q has converged: nothing discoverable\n", cluster.Name)
		return nil
	}

	rep := report.New(cluster.Name, cluster.Region, residue)
	if err := rep.Write(cfg.ReportPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "residue report written to %s\n", cfg.ReportPath)
	return &errResidue{count: len(residue), path: cfg.ReportPath}
}

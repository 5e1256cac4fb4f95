package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reapr-io/reapr/internal/discovery"
	"github.com/reapr-io/reapr/internal/report"
	"github.com/reapr-io/reapr/internal/resource"
)

var (
	cleanupRegion     string
	cleanupDryRun     bool
	cleanupReportPath string
	cleanupFromReport string
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [cluster]",
	Short: "Reclaim every resource belonging to a cluster",
	Long: `Discovers all resources tagged or named after the cluster identifier,
deletes them in dependency order, verifies convergence, and writes a
residue report for anything left behind.

With --from-report, live discovery is skipped and the recorded residue of a
previous run is used as the resource source instead. The two input modes are
never combined.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupRegion, "region", "", "Cloud region (overrides config)")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Print the deletion plan without deleting anything")
	cleanupCmd.Flags().StringVar(&cleanupReportPath, "report", "", "Residue report path (overrides config)")
	cleanupCmd.Flags().StringVar(&cleanupFromReport, "from-report", "", "Use a previous residue report instead of live discovery")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cleanupRegion)
	if err != nil {
		return err
	}
	if cleanupReportPath != "" {
		cfg.ReportPath = cleanupReportPath
	}

	p, err := newRegistry().Get(cfg.Provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var cluster *resource.Cluster
	switch {
	case cleanupFromReport != "":
		if len(args) > 0 {
			return fmt.Errorf("--from-report and a cluster argument are mutually exclusive")
		}
		cluster, err = report.Parse(cleanupFromReport)
		if err != nil {
			return err
		}
		if cluster.Region == "" {
			cluster.Region = cfg.Region
		}
		for _, res := range cluster.Resources {
			if res.Region == "" {
				res.Region = cluster.Region
			}
		}
		fmt.Fprintf(out, "resuming cleanup of %q from %s (%d resources)\n",
			cluster.Name, cleanupFromReport, len(cluster.Resources))
	case len(args) == 1:
		var warnings []string
		cluster, warnings, err = discovery.New(p).Discover(ctx, args[0], cfg.Region)
		if err != nil {
			return err
		}
		printWarnings(out, warnings)
		fmt.Fprintf(out, "discovered %d resources for cluster %q\n",
			len(cluster.Resources), cluster.Name)
	default:
		return fmt.Errorf("a cluster identifier or --from-report is required")
	}

	return runReclamation(ctx, p, cfg, cluster, cleanupDryRun, cfg.ReportPath, out)
}

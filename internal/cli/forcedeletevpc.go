package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reapr-io/reapr/internal/discovery"
)

var (
	forceVpcRegion     string
	forceVpcDryRun     bool
	forceVpcReportPath string
)

var forceDeleteVpcCmd = &cobra.Command{
	Use:   "force-delete-vpc <vpc-id>",
	Short: "Tear down one VPC and everything attached to it",
	Long: `Enumerates resources by VPC membership instead of cluster tags, then runs
the normal ordered deletion pipeline over them. This is the escape hatch for
a VPC whose resources lost their tags or never had them.`,
	Args: cobra.ExactArgs(1),
	RunE: runForceDeleteVpc,
}

func init() {
	forceDeleteVpcCmd.Flags().StringVar(&forceVpcRegion, "region", "", "Cloud region (overrides config)")
	forceDeleteVpcCmd.Flags().BoolVar(&forceVpcDryRun, "dry-run", false, "Print the deletion plan without deleting anything")
	forceDeleteVpcCmd.Flags().StringVar(&forceVpcReportPath, "report", "", "Residue report path (overrides config)")
}

func runForceDeleteVpc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(forceVpcRegion)
	if err != nil {
		return err
	}
	if forceVpcReportPath != "" {
		cfg.ReportPath = forceVpcReportPath
	}

	p, err := newRegistry().Get(cfg.Provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cluster, warnings, err := discovery.New(p).DiscoverVpc(ctx, args[0], cfg.Region)
	if err != nil {
		return err
	}
	printWarnings(out, warnings)
	fmt.Fprintf(out, "discovered %d resources attached to %s\n",
		len(cluster.Resources), args[0])

	return runReclamation(ctx, p, cfg, cluster, forceVpcDryRun, cfg.ReportPath, out)
}

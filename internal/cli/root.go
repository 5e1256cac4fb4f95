package cli

import (
	"github.com/spf13/cobra"

	"github.com/reapr-io/reapr/internal/logging"
)

var (
	logLevel string
	cfgFile  string
)

var rootCmd = &cobra.Command{
	Use:   "reapr",
	Short: "Dependency-ordered cloud cluster reclamation",
	Long: `Reapr tears down the cloud resources of an isolated cluster environment.

It discovers everything tagged or named after a cluster, deletes it in
dependency order (instances before subnets, subnets before the VPC),
retries around the provider's eventual consistency, verifies convergence,
and writes a residue report for whatever could not be cleaned up. That
report can drive a later, narrower pass.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a reapr config file")

	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(forceDeleteVpcCmd)
	rootCmd.AddCommand(versionCmd)
}

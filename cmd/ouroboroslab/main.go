package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ouroboroslab",
		Short: "Coupled optimization/heat dynamics simulator",
		Long: `ouroboroslab runs seed-reproducible simulations of coupled
optimization (omega) and heat (H) dynamics, scores trajectories for
periodicity, and classifies the regime each parameter set settles into.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to lab YAML config")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("db", "", "SQLite results database path")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSweepCmd(),
		newVerifyCmd(),
		newExportCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ouroboroslab version %s\n", version)
		},
	}
}

// Command climatesim runs the air-conditioning agent simulation and prints
// the final world temperature.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "climatesim",
		Short: "Agents with air conditioners, one shared climate",
		Long: `climatesim runs a population of agents that each tick choose whether
to run their air conditioner. Cooling a room warms the shared world.

With no flags it runs 100 agents for 1000 ticks and prints the final
world temperature.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runSimulation,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace, warn, error")
	rootCmd.PersistentFlags().String("db", "", "SQLite run history file (empty disables recording)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	// Run flags
	rootCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
	rootCmd.Flags().Int("agents", 0, "Population size")
	rootCmd.Flags().Uint64("ticks", 0, "Number of ticks")
	rootCmd.Flags().String("policy", "", "Decision policy: weighted or greedy")
	rootCmd.Flags().String("traits", "", "Trait source: uniform or noise")
	rootCmd.Flags().Uint64("report-every", 0, "Log progress every N ticks")

	rootCmd.AddCommand(
		newVersionCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

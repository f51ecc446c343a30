package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prun",
		Short: "prun - production planning and market analysis for Prosperous Universe",
		Long: `prun plans production chains and analyzes commodity exchange order books
using game data from the FIO REST API.

Examples:
  prun plan --planet UV-351a --target C --recipe FRM:2xH2O=4xHCP --recipe INC:4xHCP-2xGRN-2xMAI=4xC
  prun exchange RAT.CI1
  prun arbitrage RAT --buy-from CI1 --sell-to NC1 --max-volume 500
  prun construction CHP --planet UV-351a --exchange CI1`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewExchangeCommand())
	rootCmd.AddCommand(NewArbitrageCommand())
	rootCmd.AddCommand(NewConstructionCommand())
	rootCmd.AddCommand(NewAuthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

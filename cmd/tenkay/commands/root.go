package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "tenkay",
	Short: "10KAY - SEC filing analysis backend",
	Long: `10KAY backend CLI

Serves the API behind 10kay.io and runs the data pipeline: EDGAR
filing sync, earnings calendar refresh, market data, press coverage
and newsletter digests.

Usage:
  go run ./cmd/tenkay [command]

Examples:
  go run ./cmd/tenkay api
  go run ./cmd/tenkay scheduler start
  go run ./cmd/tenkay fetch filings
  go run ./cmd/tenkay status`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "niftywatch",
	Short: "NIFTY 50 stock screener",
	Long: `niftywatch - NIFTY 50 stock screener

Screens the NIFTY 50 universe on fundamentals (PE, ROE) and technicals
(RSI, SMA 20, volume spikes), classifies each ticker Buy/Sell/Hold and
exports the results as xlsx workbooks.

Usage:
  go run ./cmd/niftywatch [command]

Examples:
  go run ./cmd/niftywatch screen
  go run ./cmd/niftywatch screen --max-pe 25 --signal Buy --plot RELIANCE.NS
  go run ./cmd/niftywatch universe refresh
  go run ./cmd/niftywatch api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

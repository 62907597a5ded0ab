package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Show the ticker universe",
	Long: `Prints the stored ticker universe, fetching it from NSE on
first use.

Example:
  go run ./cmd/niftywatch universe
  go run ./cmd/niftywatch universe refresh`,
	RunE: runUniverse,
}

// universeRefreshCmd re-fetches the constituent list
var universeRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the constituent list from NSE",
	RunE:  runUniverseRefresh,
}

func init() {
	rootCmd.AddCommand(universeCmd)
	universeCmd.AddCommand(universeRefreshCmd)
}

func runUniverse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tickers, err := a.universe.Tickers(cmd.Context())
	if err != nil {
		return err
	}

	printUniverse(a, tickers)
	return nil
}

func runUniverseRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tickers, err := a.universe.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Universe refreshed.")
	printUniverse(a, tickers)
	return nil
}

func printUniverse(a *app, tickers []string) {
	for _, ticker := range tickers {
		fmt.Println(ticker)
	}
	fmt.Printf("\n%d tickers", len(tickers))
	if mtime := a.universe.Store().ModTime(); !mtime.IsZero() {
		fmt.Printf(" (updated %s)", mtime.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
}

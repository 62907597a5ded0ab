package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/internal/screener"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [tickers...]",
	Short: "Run a screening pass",
	Long: `Runs one screening pass over the ticker universe.

Each ticker is fetched from Yahoo Finance (fundamentals + 6 months of
daily bars), indicators are computed, a Buy/Sell/Hold signal assigned,
and both the full and the filtered table are exported as xlsx.

Tickers given as arguments override the stored universe.

Example:
  go run ./cmd/niftywatch screen
  go run ./cmd/niftywatch screen --max-pe 25 --min-roe 18 --sort "PE Ratio"
  go run ./cmd/niftywatch screen --signal Buy --plot RELIANCE.NS --plot TCS.NS
  go run ./cmd/niftywatch screen RELIANCE.NS TCS.NS INFY.NS`,
	RunE: runScreen,
}

var (
	screenMaxPE    float64
	screenMinROE   float64
	screenSignal   string
	screenSortBy   string
	screenPlot     []string
	screenStrategy string
	screenNoExport bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().Float64Var(&screenMaxPE, "max-pe", screener.DefaultMaxPE, "maximum PE ratio for the filtered table")
	screenCmd.Flags().Float64Var(&screenMinROE, "min-roe", screener.DefaultMinROE, "minimum ROE (%) for the filtered table")
	screenCmd.Flags().StringVar(&screenSignal, "signal", "All", "signal filter (All|Buy|Sell|Hold)")
	screenCmd.Flags().StringVar(&screenSortBy, "sort", "None", `sort column (None|"PE Ratio"|"ROE (%)"|RSI)`)
	screenCmd.Flags().StringArrayVar(&screenPlot, "plot", nil, "ticker to chart (repeatable)")
	screenCmd.Flags().StringVar(&screenStrategy, "strategy", "", "strategy YAML file (overrides env default)")
	screenCmd.Flags().BoolVar(&screenNoExport, "no-export", false, "skip the xlsx export")
}

func runScreen(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	opts, err := screenOptions(cmd, a)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tickers := args
	if len(tickers) == 0 {
		tickers, err = a.universe.Tickers(ctx)
		if err != nil {
			return fmt.Errorf("load universe: %w", err)
		}
	}

	fmt.Printf("Screening %d tickers...\n\n", len(tickers))

	result, err := a.screener.Screen(ctx, tickers, opts)
	if err != nil {
		return err
	}

	if result.IsEmpty() {
		fmt.Println("No tickers produced a row (missing data or short history).")
		return nil
	}

	printTable("All results", result.Full)
	printTable("Filtered results", result.Filtered)

	if !screenNoExport {
		if err := a.excel.WriteResult(result); err != nil {
			return fmt.Errorf("export workbooks: %w", err)
		}
		fmt.Printf("Workbooks written to %s/\n", a.cfg.Screener.ExportDir)
	}

	return nil
}

// screenOptions merges the strategy file (if any) with explicit flags.
// A flag the user set always wins over the file.
func screenOptions(cmd *cobra.Command, a *app) (screener.Options, error) {
	opts := screener.DefaultOptions()

	strategyFile := a.cfg.Screener.StrategyFile
	if cmd.Flags().Changed("strategy") {
		strategyFile = screenStrategy
	}
	if strategyFile != "" {
		loaded, err := screener.LoadStrategy(strategyFile)
		if err != nil {
			return opts, fmt.Errorf("load strategy: %w", err)
		}
		opts = loaded
	}

	if cmd.Flags().Changed("max-pe") {
		opts.MaxPE = screenMaxPE
	}
	if cmd.Flags().Changed("min-roe") {
		opts.MinROE = screenMinROE
	}
	if cmd.Flags().Changed("signal") {
		opts.SignalFilter = contracts.SignalFilter(screenSignal)
	}
	if cmd.Flags().Changed("sort") {
		opts.SortBy = contracts.SortKey(screenSortBy)
	}
	for _, ticker := range screenPlot {
		opts.PlotTickers[ticker] = true
	}

	return opts, nil
}

// printTable renders one result table to stdout.
func printTable(title string, rows []contracts.ScreenRow) {
	fmt.Printf("=== %s (%d) ===\n", title, len(rows))
	if len(rows) == 0 {
		fmt.Println("(empty)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Ticker\tPE Ratio\tROE (%)\tRSI\tVolume Spike\tSignal")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%t\t%s\n",
			row.Ticker, row.PERatio, row.ROEPercent, row.RSI, row.VolumeSpikeToday, row.Signal)
	}
	w.Flush()
	fmt.Println()
}

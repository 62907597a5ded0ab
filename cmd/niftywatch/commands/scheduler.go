package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kvenkat/niftywatch/internal/scheduler"
	"github.com/kvenkat/niftywatch/internal/scheduler/jobs"
	"github.com/kvenkat/niftywatch/internal/screener"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Runs the cron scheduler in the foreground.

Jobs:
  universe_refresh - Monday 7:30 AM, re-fetches the constituent list
  daily_screen     - weekdays 6 PM, screens the universe and exports xlsx

Example:
  go run ./cmd/niftywatch scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	opts := screener.DefaultOptions()
	if a.cfg.Screener.StrategyFile != "" {
		opts, err = screener.LoadStrategy(a.cfg.Screener.StrategyFile)
		if err != nil {
			return fmt.Errorf("load strategy: %w", err)
		}
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewUniverseJob(a.universe, a.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewScreenJob(a.screener, a.universe, a.excel, opts, a.log)); err != nil {
		return err
	}

	sched.Start()

	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

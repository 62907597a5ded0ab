package jobs

import (
	"context"
	"fmt"

	"github.com/kvenkat/niftywatch/internal/report"
	"github.com/kvenkat/niftywatch/internal/screener"
	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// ScreenJob runs the daily screening pass and exports the workbooks
// SSOT: the screening schedule lives in this Job only
type ScreenJob struct {
	screener *screener.Screener
	universe *universe.Service
	excel    *report.ExcelWriter
	opts     screener.Options
	logger   *logger.Logger
}

// NewScreenJob creates a new screening job. opts is the strategy the
// scheduled pass runs with.
func NewScreenJob(s *screener.Screener, u *universe.Service, excel *report.ExcelWriter, opts screener.Options, log *logger.Logger) *ScreenJob {
	return &ScreenJob{
		screener: s,
		universe: u,
		excel:    excel,
		opts:     opts,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreenJob) Name() string {
	return "daily_screen"
}

// Schedule returns the cron schedule (weekdays 6 PM, after the close)
func (j *ScreenJob) Schedule() string {
	return "0 0 18 * * 1-5"
}

// Run screens the universe and writes both workbooks
func (j *ScreenJob) Run(ctx context.Context) error {
	tickers, err := j.universe.Tickers(ctx)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	result, err := j.screener.Screen(ctx, tickers, j.opts)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	if err := j.excel.WriteResult(result); err != nil {
		return fmt.Errorf("export workbooks: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"screened": len(result.Full),
		"matched":  len(result.Filtered),
	}).Info("Scheduled screen complete")
	return nil
}

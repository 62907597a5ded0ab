// Package jobs implements the scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// UniverseJob refreshes the ticker universe from NSE
// SSOT: the universe refresh schedule lives in this Job only
type UniverseJob struct {
	universe *universe.Service
	logger   *logger.Logger
}

// NewUniverseJob creates a new universe refresh job
func NewUniverseJob(u *universe.Service, log *logger.Logger) *UniverseJob {
	return &UniverseJob{
		universe: u,
		logger:   log,
	}
}

// Name returns the job name
func (j *UniverseJob) Name() string {
	return "universe_refresh"
}

// Schedule returns the cron schedule (Monday 7:30 AM, before the market opens)
func (j *UniverseJob) Schedule() string {
	return "0 30 7 * * 1"
}

// Run refreshes the stored constituent list
func (j *UniverseJob) Run(ctx context.Context) error {
	tickers, err := j.universe.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh universe: %w", err)
	}

	j.logger.WithField("count", len(tickers)).Info("Universe refresh complete")
	return nil
}

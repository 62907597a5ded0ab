package commands

import (
	"fmt"

	"github.com/kvenkat/niftywatch/internal/external/yahoo"
	"github.com/kvenkat/niftywatch/internal/report"
	"github.com/kvenkat/niftywatch/internal/screener"
	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/config"
	"github.com/kvenkat/niftywatch/pkg/httputil"
	"github.com/kvenkat/niftywatch/pkg/logger"
	"github.com/kvenkat/niftywatch/pkg/redis"
)

// app bundles the wired components every command runs against.
// SSOT: dependency wiring happens in this file only
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	redis    *redis.Client
	screener *screener.Screener
	universe *universe.Service
	excel    *report.ExcelWriter
}

// newApp loads config and wires the full pipeline.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	var bundleCache *redis.Cache
	if redisClient.Enabled() {
		bundleCache = redis.NewCache(redisClient, "niftywatch")
	}

	httpClient := httputil.New(log)

	yahooClient := yahoo.NewClient(cfg, httpClient, log)
	provider := yahoo.NewProvider(yahooClient, bundleCache, cfg.Screener.BundleTTL, log)

	charts := report.NewChartWriter(cfg.Screener.ChartDir, log)
	s := screener.New(provider, charts, log, cfg.Screener.FetchInterval)

	store := universe.NewStore(cfg.NSE.TickersFile)
	universeClient := universe.NewClient(cfg, httpClient, log)
	universeSvc := universe.NewService(universeClient, store, log)

	return &app{
		cfg:      cfg,
		log:      log,
		redis:    redisClient,
		screener: s,
		universe: universeSvc,
		excel:    report.NewExcelWriter(cfg.Screener.ExportDir, log),
	}, nil
}

// close releases held connections.
func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

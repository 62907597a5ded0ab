package yahoo

import (
	"context"
	"time"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/pkg/cache"
	"github.com/kvenkat/niftywatch/pkg/logger"
	"github.com/kvenkat/niftywatch/pkg/redis"
)

// bundle pairs the two per-ticker fetches so they expire together.
type bundle struct {
	Fundamentals contracts.Fundamentals `json:"fundamentals"`
	Series       contracts.PriceSeries  `json:"series"`
}

// Provider serves (Fundamentals, PriceSeries) bundles with a TTL cache
// in front of the Yahoo client. The in-process cache guarantees at most
// one upstream fetch per ticker per expiry window within a process; the
// optional redis layer extends that across processes.
type Provider struct {
	client     *Client
	memCache   *cache.TTLCache
	redisCache *redis.Cache
	ttl        time.Duration
	logger     *logger.Logger
}

// NewProvider creates a Provider. redisCache may be nil.
func NewProvider(client *Client, redisCache *redis.Cache, ttl time.Duration, log *logger.Logger) *Provider {
	return &Provider{
		client:     client,
		memCache:   cache.NewTTL(),
		redisCache: redisCache,
		ttl:        ttl,
		logger:     log.WithField("module", "provider"),
	}
}

// GetBundle returns the fundamentals and price history for a ticker,
// fetching from Yahoo only when no cache layer holds a live copy.
func (p *Provider) GetBundle(ctx context.Context, ticker string) (contracts.Fundamentals, contracts.PriceSeries, error) {
	if v, ok := p.memCache.Get(ticker); ok {
		b := v.(bundle)
		return b.Fundamentals, b.Series, nil
	}

	if p.redisCache != nil {
		var b bundle
		found, err := p.redisCache.Get(ctx, "bundle:"+ticker, &b)
		if err != nil {
			p.logger.WithError(err).Warn("Redis cache read failed")
		}
		if found {
			p.memCache.Set(ticker, b, p.ttl)
			return b.Fundamentals, b.Series, nil
		}
	}

	fund, err := p.client.FetchFundamentals(ctx, ticker)
	if err != nil {
		return contracts.Fundamentals{}, nil, err
	}

	series, err := p.client.FetchDailyBars(ctx, ticker)
	if err != nil {
		return contracts.Fundamentals{}, nil, err
	}

	b := bundle{Fundamentals: fund, Series: series}
	p.memCache.Set(ticker, b, p.ttl)
	if p.redisCache != nil {
		if err := p.redisCache.Set(ctx, "bundle:"+ticker, b, p.ttl); err != nil {
			p.logger.WithError(err).Warn("Redis cache write failed")
		}
	}

	return fund, series, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvenkat/niftywatch/internal/api/handlers"
	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/internal/screener"
	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/config"
	"github.com/kvenkat/niftywatch/pkg/httputil"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

type stubProvider struct {
	fund   contracts.Fundamentals
	series contracts.PriceSeries
}

func (p *stubProvider) GetBundle(_ context.Context, _ string) (contracts.Fundamentals, contracts.PriceSeries, error) {
	return p.fund, p.series, nil
}

func floatPtr(v float64) *float64 { return &v }

func risingSeries(n int) contracts.PriceSeries {
	series := make(contracts.PriceSeries, n)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range series {
		series[i] = contracts.PricePoint{
			Timestamp: day.AddDate(0, 0, i),
			Close:     100 + float64(i),
			Volume:    1_000_000,
		}
	}
	return series
}

func newTestRouter(t *testing.T) (http.Handler, *universe.Store) {
	t.Helper()

	log := logger.NewNop()
	provider := &stubProvider{
		fund:   contracts.Fundamentals{TrailingPE: floatPtr(20), ReturnOnEquity: floatPtr(0.25)},
		series: risingSeries(40),
	}
	s := screener.New(provider, nil, log, 0)

	store := universe.NewStore(filepath.Join(t.TempDir(), "tickers.csv"))
	cfg := &config.Config{NSE: config.NSEConfig{ConstituentsURL: "http://127.0.0.1:0", FallbackURL: "http://127.0.0.1:0"}}
	client := universe.NewClient(cfg, httputil.New(log).DisableRetry(), log)
	svc := universe.NewService(client, store, log)

	router := NewRouter(
		handlers.NewScreenHandler(s, svc, log),
		handlers.NewUniverseHandler(svc, log),
		log,
	)
	return router, store
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetUniverse(t *testing.T) {
	router, store := newTestRouter(t)
	require.NoError(t, store.Save([]string{"RELIANCE.NS", "TCS.NS"}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/universe", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tickers []string `json:"tickers"`
		Count   int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"RELIANCE.NS", "TCS.NS"}, body.Tickers)
}

func TestGetUniverse_UnreachableSource(t *testing.T) {
	router, _ := newTestRouter(t)

	// No stored list and no reachable source.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/universe", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestScreenEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	require.NoError(t, store.Save([]string{"RELIANCE.NS"}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/screen", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result contracts.ScreenResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Full, 1)
	assert.Equal(t, "RELIANCE.NS", result.Full[0].Ticker)
	assert.Equal(t, 20.0, result.Full[0].PERatio)
	assert.Equal(t, 25.0, result.Full[0].ROEPercent)
}

func TestScreenEndpoint_ExplicitTickersSkipUniverse(t *testing.T) {
	router, _ := newTestRouter(t)

	// The stored universe is empty; the request supplies its own list.
	body := `{"tickers": ["INFY.NS"], "max_pe": 10}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/screen", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result contracts.ScreenResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Full, 1)
	// PE 20 fails the max_pe 10 filter.
	assert.Empty(t, result.Filtered)
}

func TestScreenEndpoint_InvalidOptions(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"tickers": ["A.NS"], "signal_filter": "Strong Buy"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/screen", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScreenEndpoint_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/screen", strings.NewReader(`{not json`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

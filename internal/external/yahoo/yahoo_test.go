package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kvenkat/niftywatch/pkg/config"
	"github.com/kvenkat/niftywatch/pkg/httputil"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1767225600, 1767312000, 1767398400],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [101.0, null, 103.0],
          "low":    [99.0,  null, 101.0],
          "close":  [100.5, null, 102.5],
          "volume": [1000000, null, 1200000]
        }]
      }
    }],
    "error": null
  }
}`

const quoteFixture = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {"trailingPE": {"raw": 27.53, "fmt": "27.53"}},
      "financialData": {"returnOnEquity": {"raw": 0.184, "fmt": "18.40%"}}
    }],
    "error": null
  }
}`

const quoteMissingROEFixture = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {"trailingPE": {"raw": 27.53}},
      "financialData": {"returnOnEquity": {}}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Yahoo: config.YahooConfig{
			BaseURL:           baseURL,
			ChartRange:        "6mo",
			RequestsPerSecond: 1000,
		},
	}
	log := logger.NewNop()
	return NewClient(cfg, httputil.New(log).DisableRetry(), log)
}

func TestParseChart(t *testing.T) {
	var resp chartResponse
	if err := json.Unmarshal([]byte(chartFixture), &resp); err != nil {
		t.Fatal(err)
	}

	series := parseChart(&resp)
	// The null bar (market holiday) is dropped.
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	if series[0].Close != 100.5 || series[1].Close != 102.5 {
		t.Errorf("closes = %v, %v", series[0].Close, series[1].Close)
	}
	if !series.IsChronological() {
		t.Error("series not chronological")
	}
	if series[1].Volume != 1200000 {
		t.Errorf("volume = %v, want 1200000", series[1].Volume)
	}
}

func TestFetchDailyBars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v8/finance/chart/RELIANCE.NS") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("range") != "6mo" {
			t.Errorf("range = %q, want 6mo", r.URL.Query().Get("range"))
		}
		w.Write([]byte(chartFixture))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	series, err := c.FetchDailyBars(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("FetchDailyBars() error = %v", err)
	}
	if len(series) != 2 {
		t.Errorf("len = %d, want 2", len(series))
	}
}

func TestFetchDailyBars_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	series, err := c.FetchDailyBars(context.Background(), "NOPE.NS")
	if err != nil {
		t.Fatalf("unknown symbol should not be an error, got %v", err)
	}
	if len(series) != 0 {
		t.Errorf("len = %d, want 0", len(series))
	}
}

func TestFetchFundamentals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "summaryDetail") {
			t.Errorf("missing modules in query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(quoteFixture))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	fund, err := c.FetchFundamentals(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("FetchFundamentals() error = %v", err)
	}

	if !fund.Complete() {
		t.Fatal("fundamentals incomplete")
	}
	if *fund.TrailingPE != 27.53 {
		t.Errorf("TrailingPE = %v, want 27.53", *fund.TrailingPE)
	}
	if *fund.ReturnOnEquity != 0.184 {
		t.Errorf("ReturnOnEquity = %v, want 0.184", *fund.ReturnOnEquity)
	}
}

func TestFetchFundamentals_AbsentMetricStaysAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quoteMissingROEFixture))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	fund, err := c.FetchFundamentals(context.Background(), "X.NS")
	if err != nil {
		t.Fatal(err)
	}

	if fund.TrailingPE == nil {
		t.Error("TrailingPE should be present")
	}
	if fund.ReturnOnEquity != nil {
		t.Errorf("ReturnOnEquity = %v, want absent", *fund.ReturnOnEquity)
	}
	if fund.Complete() {
		t.Error("Complete() = true with absent ROE")
	}
}

func TestProvider_CachesBundle(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if strings.Contains(r.URL.Path, "quoteSummary") {
			w.Write([]byte(quoteFixture))
			return
		}
		w.Write([]byte(chartFixture))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	provider := NewProvider(c, nil, time.Hour, logger.NewNop())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		fund, series, err := provider.GetBundle(ctx, "INFY.NS")
		if err != nil {
			t.Fatalf("GetBundle() error = %v", err)
		}
		if !fund.Complete() || len(series) != 2 {
			t.Fatalf("unexpected bundle: %+v, %d bars", fund, len(series))
		}
	}

	// One quoteSummary call plus one chart call, regardless of repeats.
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Errorf("upstream hits = %d, want 2", got)
	}
}

func TestProvider_DistinctTickersFetchSeparately(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if strings.Contains(r.URL.Path, "quoteSummary") {
			w.Write([]byte(quoteFixture))
			return
		}
		w.Write([]byte(chartFixture))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	provider := NewProvider(c, nil, time.Hour, logger.NewNop())

	ctx := context.Background()
	if _, _, err := provider.GetBundle(ctx, "A.NS"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := provider.GetBundle(ctx, "B.NS"); err != nil {
		t.Fatal(err)
	}

	if got := atomic.LoadInt64(&hits); got != 4 {
		t.Errorf("upstream hits = %d, want 4", got)
	}
}

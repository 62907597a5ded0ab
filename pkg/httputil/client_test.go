package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kvenkat/niftywatch/pkg/logger"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "niftywatch", "count": 50}`))
	}))
	defer server.Close()

	var dest struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	c := New(logger.NewNop()).DisableRetry()
	if err := c.GetJSON(context.Background(), server.URL, &dest); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if dest.Name != "niftywatch" || dest.Count != 50 {
		t.Errorf("dest = %+v", dest)
	}
}

func TestGetJSON_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var dest map[string]interface{}
	c := New(logger.NewNop()).DisableRetry()
	if err := c.GetJSON(context.Background(), server.URL, &dest); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestUserAgentHeader(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(logger.NewNop()).DisableRetry().WithUserAgent("niftywatch-test")
	resp, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got != "niftywatch-test" {
		t.Errorf("User-Agent = %q, want niftywatch-test", got)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := New(logger.NewNop()).WithRetry(3, time.Millisecond)
	resp, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := atomic.LoadInt64(&hits); got != 3 {
		t.Errorf("hits = %d, want 3", got)
	}
}

func TestRetryHonorsContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(logger.NewNop()).WithRetry(5, time.Minute)
	if _, err := c.Get(ctx, server.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatus(tt.status); got != tt.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

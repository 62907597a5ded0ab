package universe

import (
	"context"
	"fmt"
	"os"

	"github.com/kvenkat/niftywatch/pkg/logger"
)

// Service combines the constituents client with the local store: loads
// from disk when a list exists, refreshes from NSE when it does not.
type Service struct {
	client *Client
	store  *Store
	logger *logger.Logger
}

// NewService creates a Service.
func NewService(client *Client, store *Store, log *logger.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: log.WithField("module", "universe"),
	}
}

// Store exposes the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// Tickers returns the screening universe, fetching and persisting it
// on first use.
func (s *Service) Tickers(ctx context.Context) ([]string, error) {
	tickers, err := s.store.Load()
	if err == nil {
		s.logger.WithField("count", len(tickers)).Debug("Loaded ticker universe from disk")
		return tickers, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load ticker universe: %w", err)
	}
	return s.Refresh(ctx)
}

// Refresh fetches the current constituents and overwrites the store.
func (s *Service) Refresh(ctx context.Context) ([]string, error) {
	tickers, err := s.client.FetchConstituents(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(tickers); err != nil {
		return nil, fmt.Errorf("save ticker universe: %w", err)
	}
	s.logger.WithField("count", len(tickers)).Info("Refreshed ticker universe")
	return tickers, nil
}

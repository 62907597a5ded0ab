package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists the ticker list as a one-column CSV (header: Ticker).
// SSOT: the on-disk ticker list lives only at this path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted ticker list. A missing file is an error the
// caller can detect with os.IsNotExist.
func (s *Store) Load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ticker file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("ticker file %s has no data rows", s.path)
	}
	if !strings.EqualFold(strings.TrimSpace(records[0][0]), "Ticker") {
		return nil, fmt.Errorf("ticker file %s missing Ticker header", s.path)
	}

	tickers := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		ticker := strings.TrimSpace(record[0])
		if ticker == "" {
			continue
		}
		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// Save writes the ticker list, creating parent directories as needed.
func (s *Store) Save(tickers []string) error {
	if len(tickers) == 0 {
		return fmt.Errorf("refusing to save empty ticker list")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ticker dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ticker file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Ticker"}); err != nil {
		return err
	}
	for _, ticker := range tickers {
		if err := writer.Write([]string{ticker}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ModTime reports when the ticker file was last written. The zero time
// means the file does not exist.
func (s *Store) ModTime() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

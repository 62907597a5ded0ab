package screener

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

// strategyFile is the YAML shape of a screening strategy. Pointer fields
// distinguish "not set" from an explicit zero.
type strategyFile struct {
	MaxPE        *float64 `yaml:"max_pe"`
	MinROE       *float64 `yaml:"min_roe"`
	SignalFilter string   `yaml:"signal_filter"`
	SortBy       string   `yaml:"sort_by"`
	PlotTickers  []string `yaml:"plot_tickers"`
}

// LoadStrategy reads screening defaults from a YAML file. Unknown fields
// fail immediately so typos never silently fall back to defaults.
func LoadStrategy(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read strategy file: %w", err)
	}

	var raw strategyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return Options{}, fmt.Errorf("parse strategy file: %w", err)
	}

	opts := DefaultOptions()
	if raw.MaxPE != nil {
		opts.MaxPE = *raw.MaxPE
	}
	if raw.MinROE != nil {
		opts.MinROE = *raw.MinROE
	}
	if raw.SignalFilter != "" {
		opts.SignalFilter = contracts.SignalFilter(raw.SignalFilter)
	}
	if raw.SortBy != "" {
		opts.SortBy = contracts.SortKey(raw.SortBy)
	}
	for _, ticker := range raw.PlotTickers {
		opts.PlotTickers[ticker] = true
	}

	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("strategy file invalid: %w", err)
	}

	return opts, nil
}

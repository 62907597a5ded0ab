package screener

import (
	"fmt"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

// Default filter thresholds.
const (
	DefaultMaxPE  = 30
	DefaultMinROE = 15
)

// Options configures a single screening pass.
type Options struct {
	// MaxPE is the upper bound on PE ratio for the filtered table.
	MaxPE float64

	// MinROE is the lower bound on ROE (%) for the filtered table.
	MinROE float64

	// PlotTickers is the set of tickers for which a chart is rendered.
	PlotTickers map[string]bool

	// SignalFilter narrows the filtered table to one signal.
	SignalFilter contracts.SignalFilter

	// SortBy orders the filtered table ascending by the given column.
	SortBy contracts.SortKey
}

// DefaultOptions returns the default screening configuration.
func DefaultOptions() Options {
	return Options{
		MaxPE:        DefaultMaxPE,
		MinROE:       DefaultMinROE,
		PlotTickers:  map[string]bool{},
		SignalFilter: contracts.FilterAll,
		SortBy:       contracts.SortNone,
	}
}

// ValidationError marks an invalid screening option. Options are
// validated at the boundary, before any ticker is fetched.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks filter bounds and enum values.
func (o *Options) Validate() error {
	if o.MaxPE < 0 {
		return ValidationError{"max_pe", "must not be negative"}
	}
	if o.MinROE < 0 {
		return ValidationError{"min_roe", "must not be negative"}
	}

	switch o.SignalFilter {
	case "", contracts.FilterAll, contracts.FilterBuy, contracts.FilterSell, contracts.FilterHold:
	default:
		return ValidationError{"signal_filter", fmt.Sprintf("unknown value %q", o.SignalFilter)}
	}

	switch o.SortBy {
	case "", contracts.SortNone, contracts.SortPE, contracts.SortROE, contracts.SortRSI:
	default:
		return ValidationError{"sort_by", fmt.Sprintf("unknown value %q", o.SortBy)}
	}

	return nil
}

// normalized fills enum zero values with their defaults.
func (o Options) normalized() Options {
	if o.SignalFilter == "" {
		o.SignalFilter = contracts.FilterAll
	}
	if o.SortBy == "" {
		o.SortBy = contracts.SortNone
	}
	return o
}

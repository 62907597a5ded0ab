package screener

import (
	"sort"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

// Filter derives the filtered table from the full table: fundamental
// bounds first, then the signal filter, then the sort. Row order inside
// the full table is never touched.
func Filter(full []contracts.ScreenRow, opts Options) []contracts.ScreenRow {
	opts = opts.normalized()

	filtered := make([]contracts.ScreenRow, 0, len(full))
	for _, row := range full {
		if row.PERatio > opts.MaxPE || row.ROEPercent < opts.MinROE {
			continue
		}
		if !opts.SignalFilter.Matches(row.Signal) {
			continue
		}
		filtered = append(filtered, row)
	}

	sortRows(filtered, opts.SortBy)
	return filtered
}

// sortRows orders rows ascending by the given column. SortNone keeps
// insertion order.
func sortRows(rows []contracts.ScreenRow, key contracts.SortKey) {
	var less func(a, b contracts.ScreenRow) bool

	switch key {
	case contracts.SortPE:
		less = func(a, b contracts.ScreenRow) bool { return a.PERatio < b.PERatio }
	case contracts.SortROE:
		less = func(a, b contracts.ScreenRow) bool { return a.ROEPercent < b.ROEPercent }
	case contracts.SortRSI:
		less = func(a, b contracts.ScreenRow) bool { return a.RSI < b.RSI }
	default:
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
}

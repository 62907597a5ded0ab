package contracts

// Signal is the categorical trading signal for a ticker.
type Signal string

const (
	SignalBuy  Signal = "Buy"
	SignalSell Signal = "Sell"
	SignalHold Signal = "Hold"
)

// SignalFilter narrows the filtered table to a single signal.
type SignalFilter string

const (
	FilterAll  SignalFilter = "All"
	FilterBuy  SignalFilter = "Buy"
	FilterSell SignalFilter = "Sell"
	FilterHold SignalFilter = "Hold"
)

// Matches reports whether a signal passes the filter.
func (f SignalFilter) Matches(s Signal) bool {
	return f == FilterAll || string(f) == string(s)
}

// SortKey selects the column the filtered table is sorted by.
type SortKey string

const (
	SortNone SortKey = "None"
	SortPE   SortKey = "PE Ratio"
	SortROE  SortKey = "ROE (%)"
	SortRSI  SortKey = "RSI"
)

// ScreenRow is one successfully screened ticker.
// PE, ROE% and RSI are rounded to two decimals; ROE is a percentage.
type ScreenRow struct {
	Ticker           string  `json:"ticker"`
	PERatio          float64 `json:"pe_ratio"`
	ROEPercent       float64 `json:"roe_percent"`
	RSI              float64 `json:"rsi"`
	VolumeSpikeToday bool    `json:"volume_spike_today"`
	Signal           Signal  `json:"signal"`
}

// ScreenResult holds the full table and the filtered shortlist.
// Full preserves input ticker order; Filtered is always a subset of Full.
type ScreenResult struct {
	Full     []ScreenRow `json:"full"`
	Filtered []ScreenRow `json:"filtered"`
}

// IsEmpty reports whether no ticker produced a row.
func (r *ScreenResult) IsEmpty() bool {
	return len(r.Full) == 0
}

// Tickers returns the tickers of the full table in order.
func (r *ScreenResult) Tickers() []string {
	tickers := make([]string, len(r.Full))
	for i, row := range r.Full {
		tickers[i] = row.Ticker
	}
	return tickers
}

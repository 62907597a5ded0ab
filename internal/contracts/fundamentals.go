package contracts

// Fundamentals holds the per-ticker valuation ratios used for screening.
// Absent fields are nil; a ticker with any absent field is excluded from
// the screen rather than defaulted.
type Fundamentals struct {
	TrailingPE     *float64 `json:"trailing_pe,omitempty"`
	ReturnOnEquity *float64 `json:"return_on_equity,omitempty"` // ratio, not percent
}

// Complete reports whether both ratios are present.
func (f Fundamentals) Complete() bool {
	return f.TrailingPE != nil && f.ReturnOnEquity != nil
}

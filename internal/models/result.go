package models

import "github.com/shopspring/decimal"

// ParseResult is the outcome of parsing one budget instruction.
// Income is zero when no income phrase was found.
type ParseResult struct {
	Income      decimal.Decimal `json:"income" yaml:"income"`
	Allocations Allocation      `json:"allocations" yaml:"allocations"`
	Confidence  int             `json:"confidence" yaml:"confidence"`
	Suggestions []string        `json:"suggestions" yaml:"suggestions"`
}

// HasIncome reports whether an income figure was extracted.
func (r ParseResult) HasIncome() bool {
	return r.Income.IsPositive()
}

// NeedsReview reports whether the confidence is below the review threshold.
func (r ParseResult) NeedsReview(threshold int) bool {
	return r.Confidence < threshold
}

// Clone returns a copy that shares no map or slice with r.
func (r ParseResult) Clone() ParseResult {
	out := r
	out.Allocations = r.Allocations.Clone()
	out.Suggestions = append([]string(nil), r.Suggestions...)
	return out
}

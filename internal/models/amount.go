package models

import "github.com/shopspring/decimal"

// AmountKind distinguishes absolute amounts from percentages.
type AmountKind int

const (
	KindCurrency AmountKind = iota
	KindPercentage
)

func (k AmountKind) String() string {
	switch k {
	case KindCurrency:
		return "currency"
	case KindPercentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// ExtractedAmount is a number found in instruction text. Position is the byte
// offset of the match start and identifies the amount within a single parse.
type ExtractedAmount struct {
	Value    decimal.Decimal
	Position int
	Kind     AmountKind
	Literal  string
}

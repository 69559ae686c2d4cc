// Package extraction finds money amounts, percentages and the income figure in instruction text.
package extraction

import "regexp"

// NumberLiteral matches a decimal number with optional comma thousands
// separators and an optional two-digit fraction: "6000", "1,500", "42.50".
const NumberLiteral = `(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?\b`

// PercentLiteral matches a number immediately followed by "%".
const PercentLiteral = `\d+(?:\.\d+)?%`

var (
	markedAmountPattern  = regexp.MustCompile(`\$\s?` + NumberLiteral)
	wordedAmountPattern  = regexp.MustCompile(`(?i)` + NumberLiteral + `\s*dollars?\b`)
	percentAmountPattern = regexp.MustCompile(PercentLiteral)
)

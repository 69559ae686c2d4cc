// Package currencyutils provides the decimal arithmetic shared by the extractors and the learning engine.
package currencyutils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	unitsPattern = regexp.MustCompile(`(?i)\s*(?:dollars?|usd|%)\s*$`)
)

// ParseAmount parses an amount literal into a decimal value.
// It accepts forms like "$1,500.00", "1500 dollars", "25%" and "  42 ".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency markers, unit words and thousands separators.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	s = unitsPattern.ReplaceAllString(s, "")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// FormatDollars renders an amount with a leading "$", dropping cents when they are zero.
func FormatDollars(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return "$" + amount.StringFixed(0)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercent renders a percentage without trailing zeros, e.g. "25%" or "12.5%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.Round(2).String() + "%"
}

// PercentOf returns amount * pct / 100.
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// ShareOf returns part as a percentage of whole, rounded to two places.
// It returns zero when whole is not positive.
func ShareOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// Mean returns the arithmetic mean rounded to two places, or zero for no values.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}

// Median returns the median rounded to two places, or zero for no values.
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid].Round(2)
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2)).Round(2)
}

package extraction

import (
	"regexp"

	"fjacquet/paycheck-planner/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// clauseGap spans text inside one clause without crossing another amount.
const clauseGap = `[^$.!?;\n]*?`

// Income templates, tried in order. Group 1 holds the amount.
var incomePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:paycheck|salary|income|got|received|earned|paid)\b` + clauseGap + `(\$\s?` + NumberLiteral + `)`),
	regexp.MustCompile(`(?i)(\$\s?` + NumberLiteral + `)` + clauseGap + `\b(?:paycheck|salary|income)\b`),
	regexp.MustCompile(`(?i)\b(?:made|earning|bring home|bringing home)\b` + clauseGap + `(\$\s?` + NumberLiteral + `)`),
}

// FindIncome returns the total income named in text, or zero when no template matches.
func FindIncome(text string) decimal.Decimal {
	income, _ := LocateIncome(text)
	return income
}

// LocateIncome is FindIncome that also reports the offset of the income
// amount in text, or -1 when no template matches.
func LocateIncome(text string) (decimal.Decimal, int) {
	for _, pattern := range incomePatterns {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		amount, err := currencyutils.ParseAmount(text[loc[2]:loc[3]])
		if err == nil && amount.IsPositive() {
			return amount, loc[2]
		}
	}
	return decimal.Zero, -1
}

package extraction

import (
	"regexp"
	"sort"

	"fjacquet/paycheck-planner/internal/currencyutils"
	"fjacquet/paycheck-planner/internal/models"
)

type amountFamily struct {
	pattern *regexp.Regexp
	kind    models.AmountKind
}

// Families are applied in this order; a later family never claims text an
// earlier one already matched.
var amountFamilies = []amountFamily{
	{pattern: markedAmountPattern, kind: models.KindCurrency},
	{pattern: wordedAmountPattern, kind: models.KindCurrency},
	{pattern: percentAmountPattern, kind: models.KindPercentage},
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// FindAmounts returns every currency amount and percentage in text, ordered by position.
func FindAmounts(text string) []models.ExtractedAmount {
	var (
		found   []models.ExtractedAmount
		claimed []span
	)

	for _, family := range amountFamilies {
		for _, loc := range family.pattern.FindAllStringIndex(text, -1) {
			s := span{start: loc[0], end: loc[1]}
			if overlapsAny(s, claimed) {
				continue
			}
			literal := text[loc[0]:loc[1]]
			value, err := currencyutils.ParseAmount(literal)
			if err != nil {
				continue
			}
			claimed = append(claimed, s)
			found = append(found, models.ExtractedAmount{
				Value:    value,
				Position: loc[0],
				Kind:     family.kind,
				Literal:  literal,
			})
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Position < found[j].Position })
	return found
}

// IndexByPosition keys amounts by their offset in the text.
func IndexByPosition(amounts []models.ExtractedAmount) map[int]models.ExtractedAmount {
	index := make(map[int]models.ExtractedAmount, len(amounts))
	for _, a := range amounts {
		index[a.Position] = a
	}
	return index
}

func overlapsAny(s span, claimed []span) bool {
	for _, c := range claimed {
		if s.overlaps(c) {
			return true
		}
	}
	return false
}

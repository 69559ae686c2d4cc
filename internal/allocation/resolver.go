package allocation

import (
	"fmt"
	"regexp"

	"fjacquet/paycheck-planner/internal/currencyutils"
	"fjacquet/paycheck-planner/internal/extraction"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
)

// remainderPattern recognizes "put what's left into X". Group 1 is the target word.
var remainderPattern = regexp.MustCompile(`(?i)\b(?:rest|remaining|remainder|leftover|left\s*over|everything\s+else|whatever\s+is\s+left|whatever's\s+left)\b` +
	`(?:\s+(?:of\s+(?:it|that|the\s+money|my\s+\w+)|amount|money|funds|balance))?` +
	`\s+(?:(?:should|will|can|must)\s+)?(?:go(?:es)?\s+)?(?:to|for|toward|towards|into|in)\s+(?:(?:the|my|our|a|an)\s+)?([a-z0-9]+)`)

// matcher is one rule expanded for one keyword.
type matcher struct {
	rule    Rule
	keyword string
	re      *regexp.Regexp
	slot    int
}

type categoryMatchers struct {
	id       string
	currency []matcher
	percent  []matcher
}

// Resolver assigns amounts to categories. It is safe for concurrent use.
type Resolver struct {
	registry   *registry.Registry
	categories []categoryMatchers
	logger     logging.Logger
}

// NewResolver compiles rules for every keyword of every category in reg.
func NewResolver(reg *registry.Registry, rules []Rule, logger logging.Logger) (*Resolver, error) {
	if reg == nil {
		return nil, fmt.Errorf("resolver needs a category registry")
	}

	r := &Resolver{registry: reg, logger: logging.OrDefault(logger)}
	for _, def := range reg.All() {
		cm := categoryMatchers{id: def.ID}
		for _, kw := range def.Keywords {
			for _, rule := range rules {
				re, err := rule.Compile(kw)
				if err != nil {
					return nil, err
				}
				m := matcher{rule: rule, keyword: kw, re: re, slot: re.SubexpIndex(amountGroup)}
				if rule.Kind == models.KindPercentage {
					cm.percent = append(cm.percent, m)
				} else {
					cm.currency = append(cm.currency, m)
				}
			}
		}
		r.categories = append(r.categories, cm)
	}
	return r, nil
}

// Resolve builds the allocation for text. The amounts must come from
// extraction.FindAmounts on the same text.
//
// Explicit amounts are resolved first, then percentages of income, then at
// most one remainder phrase. A category keeps the first value it receives.
func (r *Resolver) Resolve(text string, income decimal.Decimal, amounts []models.ExtractedAmount) models.Allocation {
	index := extraction.IndexByPosition(amounts)
	claimed := r.claimedPositions(text)
	alloc := models.Allocation{}

	for _, cm := range r.categories {
		if value, ok := r.firstMatch(cm.id, cm.currency, text, index, claimed); ok {
			alloc[cm.id] = value
		}
	}

	if income.IsPositive() {
		for _, cm := range r.categories {
			if alloc.Has(cm.id) {
				continue
			}
			if pct, ok := r.firstMatch(cm.id, cm.percent, text, index, claimed); ok {
				alloc[cm.id] = currencyutils.PercentOf(income, pct)
			}
		}
	}

	r.applyRemainder(text, income, alloc)
	return alloc
}

// claimedPositions returns the offsets of amounts that an amount-first rule
// links to a keyword, plus the offset of the income amount.
func (r *Resolver) claimedPositions(text string) map[int]bool {
	claimed := make(map[int]bool)
	if _, at := extraction.LocateIncome(text); at >= 0 {
		claimed[at] = true
	}
	for _, cm := range r.categories {
		for _, group := range [][]matcher{cm.currency, cm.percent} {
			for _, m := range group {
				if m.rule.keywordFirst() {
					continue
				}
				for _, loc := range m.re.FindAllStringSubmatchIndex(text, -1) {
					if start := loc[2*m.slot]; start >= 0 {
						claimed[start] = true
					}
				}
			}
		}
	}
	return claimed
}

func (r *Resolver) firstMatch(categoryID string, matchers []matcher, text string, index map[int]models.ExtractedAmount, claimed map[int]bool) (decimal.Decimal, bool) {
	for _, m := range matchers {
		value, ok := r.match(m, text, index, claimed)
		if !ok {
			continue
		}
		r.logger.Debug("Allocation rule matched",
			logging.Field{Key: logging.FieldCategory, Value: categoryID},
			logging.Field{Key: "rule", Value: m.rule.Name},
			logging.Field{Key: "keyword", Value: m.keyword},
			logging.Field{Key: logging.FieldAmount, Value: value.String()})
		return value, true
	}
	return decimal.Zero, false
}

// match returns the value of the first usable match of m in text.
func (r *Resolver) match(m matcher, text string, index map[int]models.ExtractedAmount, claimed map[int]bool) (decimal.Decimal, bool) {
	for _, loc := range m.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2*m.slot], loc[2*m.slot+1]
		if start < 0 || (m.rule.keywordFirst() && claimed[start]) {
			continue
		}

		value, ok := valueAt(index, start, m.rule.Kind)
		if !ok {
			parsed, err := currencyutils.ParseAmount(text[start:end])
			if err != nil {
				continue
			}
			value = parsed
		}
		if value.IsNegative() {
			continue
		}
		return value, true
	}
	return decimal.Zero, false
}

func valueAt(index map[int]models.ExtractedAmount, position int, kind models.AmountKind) (decimal.Decimal, bool) {
	a, ok := index[position]
	if !ok || a.Kind != kind {
		return decimal.Zero, false
	}
	return a.Value, true
}

// applyRemainder honours only the first remainder phrase. The residual is
// assigned when income is known, the target category has no value yet and
// something is actually left.
func (r *Resolver) applyRemainder(text string, income decimal.Decimal, alloc models.Allocation) {
	matches := remainderPattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return
	}

	def, ok := r.registry.MatchWord(matches[1])
	if !ok {
		r.logger.Debug("Remainder target not recognized", logging.Field{Key: logging.FieldReason, Value: matches[1]})
		return
	}
	if !income.IsPositive() || alloc.Has(def.ID) {
		return
	}

	residual := income.Sub(alloc.Sum())
	if !residual.IsPositive() {
		return
	}
	alloc[def.ID] = residual
}

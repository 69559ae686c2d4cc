// Package allocation resolves per-category amounts from instruction text.
//
// Matching is driven by a declarative rule table. Each rule is a template with
// a {keyword} slot and an {amount} slot; the resolver expands it once per
// category keyword and evaluates every rule with the same generic matcher.
package allocation

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/paycheck-planner/internal/extraction"
	"fjacquet/paycheck-planner/internal/models"
)

// Shape names the word order a rule recognizes.
type Shape string

const (
	ShapeKeywordAmount         Shape = "keyword-amount"
	ShapeAmountKeyword         Shape = "amount-keyword"
	ShapeAllocateAmountKeyword Shape = "allocate-amount-keyword"
	ShapeKeywordPercent        Shape = "keyword-percent"
	ShapePercentKeyword        Shape = "percent-keyword"
)

const (
	keywordSlot = "{keyword}"
	amountSlot  = "{amount}"
	amountGroup = "amount"
)

// Template fragments. None of them crosses a clause boundary or another amount.
const (
	link       = `(?:for|to|toward|towards|into|in|on)`
	filler     = `(?:[^\s$.!?,;%\d]+\s+){0,3}?`
	longFiller = `(?:[^\s$.!?;%\d]+\s+){0,6}?`
	clauseGap  = `[^$.!?,;%\d\n]*?`
	allocVerb  = `\b(?:allocate|put|assign|budget|set\s+aside|move|send|transfer)\b`
)

// Rule is one row of the rule table.
type Rule struct {
	Name     string
	Shape    Shape
	Kind     models.AmountKind
	Template string
}

// DefaultRules returns the rule table in precedence order. For each keyword
// the currency rules are tried in this order; percentage rules run in a
// separate pass after every category had its chance at an explicit amount.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "keyword then amount",
			Shape:    ShapeKeywordAmount,
			Kind:     models.KindCurrency,
			Template: keywordSlot + clauseGap + amountSlot,
		},
		{
			Name:     "amount then linked keyword",
			Shape:    ShapeAmountKeyword,
			Kind:     models.KindCurrency,
			Template: amountSlot + `\s+` + filler + link + `\s+` + filler + keywordSlot,
		},
		{
			Name:     "allocate amount to keyword",
			Shape:    ShapeAllocateAmountKeyword,
			Kind:     models.KindCurrency,
			Template: allocVerb + `[^$.!?;]*?` + amountSlot + `\s+` + longFiller + link + `\s+` + longFiller + keywordSlot,
		},
		{
			Name:     "keyword then percent",
			Shape:    ShapeKeywordPercent,
			Kind:     models.KindPercentage,
			Template: keywordSlot + clauseGap + amountSlot,
		},
		{
			Name:     "percent then linked keyword",
			Shape:    ShapePercentKeyword,
			Kind:     models.KindPercentage,
			Template: amountSlot + `\s+` + filler + link + `\s+` + filler + keywordSlot,
		},
	}
}

// keywordFirst reports whether the keyword comes before the amount. Such a
// rule gives way when the amount is claimed by an amount-first rule or is the
// income: in "credit cards and $50 for fun" the $50 belongs to fun.
func (r Rule) keywordFirst() bool {
	return r.Shape == ShapeKeywordAmount || r.Shape == ShapeKeywordPercent
}

// Compile expands the rule for one keyword.
func (r Rule) Compile(keyword string) (*regexp.Regexp, error) {
	if !strings.Contains(r.Template, keywordSlot) || !strings.Contains(r.Template, amountSlot) {
		return nil, fmt.Errorf("rule '%s' must contain both %s and %s", r.Name, keywordSlot, amountSlot)
	}

	expr := strings.Replace(r.Template, keywordSlot, keywordPattern(keyword), 1)
	expr = strings.Replace(expr, amountSlot, amountPattern(r.Kind), 1)

	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return nil, fmt.Errorf("rule '%s' for keyword '%s': %w", r.Name, keyword, err)
	}
	return re, nil
}

func keywordPattern(keyword string) string {
	parts := strings.Fields(keyword)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return `\b(?:` + strings.Join(parts, `\s+`) + `)s?\b`
}

func amountPattern(kind models.AmountKind) string {
	if kind == models.KindPercentage {
		return `(?P<` + amountGroup + `>` + extraction.PercentLiteral + `)`
	}
	return `(?P<` + amountGroup + `>\$\s?` + extraction.NumberLiteral + `|` + extraction.NumberLiteral + `\s*dollars?\b)`
}

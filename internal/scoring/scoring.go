// Package scoring rates how complete an extraction is and suggests what to add.
package scoring

import (
	"strings"

	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
)

// Confidence points. The total is capped at MaxConfidence.
const (
	IncomePoints          = 30
	AllocationPoints      = 40
	ManyAllocationsPoints = 20
	CurrencyMarkerPoints  = 10

	ManyAllocations = 3
	MaxConfidence   = 100
)

// Generic suggestions.
const (
	ExampleSuggestion = `Try something like: "I got $3000 from my paycheck. Put $1200 toward rent, $300 for groceries, and the rest to savings."`
	SavingsSuggestion = "Consider setting aside part of this paycheck for savings or investments."
)

// Confidence scores the completeness of an extraction from 0 to 100.
func Confidence(text string, income decimal.Decimal, alloc models.Allocation) int {
	score := 0
	if income.IsPositive() {
		score += IncomePoints
	}
	if len(alloc) > 0 {
		score += AllocationPoints
	}
	if len(alloc) >= ManyAllocations {
		score += ManyAllocationsPoints
	}
	if strings.Contains(text, "$") {
		score += CurrencyMarkerPoints
	}
	if score > MaxConfidence {
		score = MaxConfidence
	}
	return score
}

// Suggestions returns the generic follow-up prompts for an allocation.
func Suggestions(alloc models.Allocation, reg *registry.Registry) []string {
	suggestions := []string{}
	if len(alloc) == 0 {
		suggestions = append(suggestions, ExampleSuggestion)
	}
	if !hasSavings(alloc, reg) {
		suggestions = append(suggestions, SavingsSuggestion)
	}
	return suggestions
}

func hasSavings(alloc models.Allocation, reg *registry.Registry) bool {
	for id := range alloc {
		if reg.IsSavingsType(id) {
			return true
		}
	}
	return false
}

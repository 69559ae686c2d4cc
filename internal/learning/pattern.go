// Package learning derives per-user allocation habits from accepted plans.
//
// The functions in this file are pure: they take a UserPattern value and
// return a new one. Engine wraps them with loading and write-through saving.
package learning

import (
	"fmt"
	"sort"
	"time"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/currencyutils"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
)

const maxConfidenceScore = 100

// Record returns p with one accepted plan folded in.
func Record(p models.UserPattern, text string, result models.ParseResult, now time.Time, opts Options) models.UserPattern {
	opts = opts.normalized()
	next := repair(p.Clone())
	ids := result.Allocations.IDs()

	next.InputHistory = append(next.InputHistory, models.HistoryEntry{
		RawText:         text,
		Timestamp:       now,
		Income:          result.Income,
		CategoryIDsUsed: ids,
	})
	next.InputHistory = keepLast(next.InputHistory, opts.HistoryLimit)

	for _, id := range ids {
		amount := result.Allocations[id]
		entries := append(next.CommonAllocations[id], models.AllocationEntry{
			Amount:             amount,
			PercentageOfIncome: currencyutils.ShareOf(amount, result.Income),
			Timestamp:          now,
		})
		next.CommonAllocations[id] = keepLast(entries, opts.RingSize)
		next.PreferredCategories = bumpPreferred(next.PreferredCategories, id, now)
	}

	sortPreferred(next.PreferredCategories)
	next.AverageAmounts = ComputeAverages(next.CommonAllocations)
	next.LastUpdated = now
	return next
}

// ComputeAverages derives the statistics of every category that has entries.
func ComputeAverages(common map[string][]models.AllocationEntry) map[string]models.CategoryStats {
	out := make(map[string]models.CategoryStats, len(common))
	for id, entries := range common {
		if len(entries) == 0 {
			continue
		}
		amounts := make([]decimal.Decimal, len(entries))
		pcts := make([]decimal.Decimal, len(entries))
		for i, e := range entries {
			amounts[i] = e.Amount
			pcts[i] = e.PercentageOfIncome
		}
		out[id] = models.CategoryStats{
			MeanAmount:     currencyutils.Mean(amounts),
			MedianAmount:   currencyutils.Median(amounts),
			MeanPercentage: currencyutils.Mean(pcts),
			SampleCount:    len(entries),
		}
	}
	return out
}

// Suggest proposes amounts for the user's usual categories and reminds them
// of preferred categories missing from partialText. It never modifies p.
func Suggest(p models.UserPattern, reg *registry.Registry, partialText string, income decimal.Decimal, opts Options) []string {
	opts = opts.normalized()
	var out []string

	if income.IsPositive() {
		for i, pc := range p.PreferredCategories {
			if i >= opts.TopPreferred {
				break
			}
			stats, ok := p.AverageAmounts[pc.CategoryID]
			if !ok || stats.SampleCount == 0 || !stats.MeanPercentage.IsPositive() {
				continue
			}
			amount := currencyutils.PercentOf(income, stats.MeanPercentage).Round(0)
			out = append(out, fmt.Sprintf("%s: %s (you usually allocate %s here)",
				label(reg, pc.CategoryID), currencyutils.FormatDollars(amount), currencyutils.FormatPercent(stats.MeanPercentage)))
		}
	}

	mentioned := 0
	var missing []models.PreferredCategory
	for _, pc := range p.PreferredCategories {
		if reg != nil && reg.Mentions(partialText, pc.CategoryID) {
			mentioned++
		} else {
			missing = append(missing, pc)
		}
	}
	if mentioned < opts.ReminderThreshold {
		for i, pc := range missing {
			if i >= opts.ReminderCount {
				break
			}
			out = append(out, fmt.Sprintf("Don't forget %s: it was part of %d of your plans.",
				label(reg, pc.CategoryID), pc.UseCount))
		}
	}
	return out
}

// TypicalBreakdown scales the usual percentages to income for every category
// with at least MinSupport samples.
func TypicalBreakdown(p models.UserPattern, income decimal.Decimal, opts Options) map[string]models.CategoryBreakdown {
	opts = opts.normalized()
	out := make(map[string]models.CategoryBreakdown)
	for id, stats := range p.AverageAmounts {
		if stats.SampleCount < opts.MinSupport {
			continue
		}
		score := stats.SampleCount * 10
		if score > maxConfidenceScore {
			score = maxConfidenceScore
		}
		out[id] = models.CategoryBreakdown{
			Amount:          currencyutils.PercentOf(income, stats.MeanPercentage).Round(2),
			Percentage:      stats.MeanPercentage,
			ConfidenceScore: score,
			SampleCount:     stats.SampleCount,
		}
	}
	return out
}

// Summarize builds a reportable view of p, ordered by preference.
func Summarize(p models.UserPattern, userID string, reg *registry.Registry) models.LearningSummary {
	summary := models.LearningSummary{
		UserID:      userID,
		Version:     p.Version,
		LastUpdated: p.LastUpdated,
		HistorySize: len(p.InputHistory),
		Categories:  make([]models.CategorySummary, 0, len(p.PreferredCategories)),
	}
	for _, pc := range p.PreferredCategories {
		summary.Categories = append(summary.Categories, models.CategorySummary{
			CategoryID: pc.CategoryID,
			Label:      label(reg, pc.CategoryID),
			UseCount:   pc.UseCount,
			LastUsedAt: pc.LastUsedAt,
			Stats:      p.AverageAmounts[pc.CategoryID],
		})
	}
	return summary
}

// Sanitize checks a loaded pattern, repairs missing maps, enforces the caps
// and recomputes the derived statistics.
func Sanitize(p models.UserPattern, opts Options) (models.UserPattern, error) {
	opts = opts.normalized()
	p = repair(p)

	for id, entries := range p.CommonAllocations {
		for _, e := range entries {
			if e.Amount.IsNegative() || e.PercentageOfIncome.IsNegative() {
				return models.NewUserPattern(), fmt.Errorf("negative allocation for '%s': %w", id, apperror.ErrCorruptPattern)
			}
		}
		p.CommonAllocations[id] = keepLast(entries, opts.RingSize)
	}
	for _, pc := range p.PreferredCategories {
		if pc.CategoryID == "" || pc.UseCount < 0 {
			return models.NewUserPattern(), fmt.Errorf("invalid preferred category entry: %w", apperror.ErrCorruptPattern)
		}
	}

	p.InputHistory = keepLast(p.InputHistory, opts.HistoryLimit)
	sortPreferred(p.PreferredCategories)
	p.AverageAmounts = ComputeAverages(p.CommonAllocations)
	return p, nil
}

func repair(p models.UserPattern) models.UserPattern {
	if p.CommonAllocations == nil {
		p.CommonAllocations = make(map[string][]models.AllocationEntry)
	}
	if p.AverageAmounts == nil {
		p.AverageAmounts = make(map[string]models.CategoryStats)
	}
	return p
}

func bumpPreferred(prefs []models.PreferredCategory, id string, now time.Time) []models.PreferredCategory {
	for i := range prefs {
		if prefs[i].CategoryID == id {
			prefs[i].UseCount++
			prefs[i].LastUsedAt = now
			return prefs
		}
	}
	return append(prefs, models.PreferredCategory{CategoryID: id, UseCount: 1, LastUsedAt: now})
}

// sortPreferred orders by use count, then most recent use, then id.
func sortPreferred(prefs []models.PreferredCategory) {
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].UseCount != prefs[j].UseCount {
			return prefs[i].UseCount > prefs[j].UseCount
		}
		if !prefs[i].LastUsedAt.Equal(prefs[j].LastUsedAt) {
			return prefs[i].LastUsedAt.After(prefs[j].LastUsedAt)
		}
		return prefs[i].CategoryID < prefs[j].CategoryID
	})
}

// keepLast returns at most the n most recent items, in a fresh slice.
func keepLast[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return append([]T(nil), items[len(items)-n:]...)
}

func label(reg *registry.Registry, id string) string {
	if reg == nil {
		return id
	}
	if def, ok := reg.Lookup(id); ok {
		return def.DisplayName()
	}
	return id
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationEntry is one accepted allocation for a category.
type AllocationEntry struct {
	Amount             decimal.Decimal `json:"amount" yaml:"amount"`
	PercentageOfIncome decimal.Decimal `json:"percentageOfIncome" yaml:"percentageOfIncome"`
	Timestamp          time.Time       `json:"timestamp" yaml:"timestamp"`
}

// CategoryStats are derived from the allocation entries of one category.
type CategoryStats struct {
	MeanAmount     decimal.Decimal `json:"meanAmount" yaml:"meanAmount"`
	MedianAmount   decimal.Decimal `json:"medianAmount" yaml:"medianAmount"`
	MeanPercentage decimal.Decimal `json:"meanPercentage" yaml:"meanPercentage"`
	SampleCount    int             `json:"sampleCount" yaml:"sampleCount"`
}

// PreferredCategory tracks how often a category was part of an accepted plan.
type PreferredCategory struct {
	CategoryID string    `json:"categoryId" yaml:"categoryId"`
	UseCount   int       `json:"useCount" yaml:"useCount"`
	LastUsedAt time.Time `json:"lastUsedAt" yaml:"lastUsedAt"`
}

// HistoryEntry records one accepted instruction.
type HistoryEntry struct {
	RawText         string          `json:"rawText" yaml:"rawText"`
	Timestamp       time.Time       `json:"timestamp" yaml:"timestamp"`
	Income          decimal.Decimal `json:"income" yaml:"income"`
	CategoryIDsUsed []string        `json:"categoryIdsUsed" yaml:"categoryIdsUsed"`
}

// UserPattern is the learning state of one user.
//
// AverageAmounts is derived from CommonAllocations and recomputed on every
// update and on load. Version is bumped by each successful save and lets a
// store reject writes based on stale state.
type UserPattern struct {
	Version             int64                        `json:"version" yaml:"version"`
	CommonAllocations   map[string][]AllocationEntry `json:"commonAllocations" yaml:"commonAllocations"`
	AverageAmounts      map[string]CategoryStats     `json:"averageAmounts" yaml:"averageAmounts"`
	PreferredCategories []PreferredCategory          `json:"preferredCategories" yaml:"preferredCategories"`
	InputHistory        []HistoryEntry               `json:"inputHistory" yaml:"inputHistory"`
	LastUpdated         time.Time                    `json:"lastUpdated" yaml:"lastUpdated"`
}

// NewUserPattern returns an empty pattern with initialized maps.
func NewUserPattern() UserPattern {
	return UserPattern{
		CommonAllocations: make(map[string][]AllocationEntry),
		AverageAmounts:    make(map[string]CategoryStats),
	}
}

// IsEmpty reports whether nothing has been learned yet.
func (p UserPattern) IsEmpty() bool {
	return len(p.CommonAllocations) == 0 && len(p.InputHistory) == 0
}

// Clone returns a deep copy of p.
func (p UserPattern) Clone() UserPattern {
	out := UserPattern{
		Version:             p.Version,
		CommonAllocations:   make(map[string][]AllocationEntry, len(p.CommonAllocations)),
		AverageAmounts:      make(map[string]CategoryStats, len(p.AverageAmounts)),
		PreferredCategories: append([]PreferredCategory(nil), p.PreferredCategories...),
		InputHistory:        make([]HistoryEntry, len(p.InputHistory)),
		LastUpdated:         p.LastUpdated,
	}
	for id, entries := range p.CommonAllocations {
		out.CommonAllocations[id] = append([]AllocationEntry(nil), entries...)
	}
	for id, stats := range p.AverageAmounts {
		out.AverageAmounts[id] = stats
	}
	for i, h := range p.InputHistory {
		h.CategoryIDsUsed = append([]string(nil), h.CategoryIDsUsed...)
		out.InputHistory[i] = h
	}
	return out
}

// Preferred returns the preference entry for a category.
func (p UserPattern) Preferred(categoryID string) (PreferredCategory, bool) {
	for _, pc := range p.PreferredCategories {
		if pc.CategoryID == categoryID {
			return pc, true
		}
	}
	return PreferredCategory{}, false
}

// CategoryBreakdown is the typical share of income for one category.
type CategoryBreakdown struct {
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	Percentage      decimal.Decimal `json:"percentage" yaml:"percentage"`
	ConfidenceScore int             `json:"confidenceScore" yaml:"confidenceScore"`
	SampleCount     int             `json:"sampleCount" yaml:"sampleCount"`
}

// CategorySummary is one row of a LearningSummary.
type CategorySummary struct {
	CategoryID string        `json:"categoryId" yaml:"categoryId"`
	Label      string        `json:"label" yaml:"label"`
	UseCount   int           `json:"useCount" yaml:"useCount"`
	LastUsedAt time.Time     `json:"lastUsedAt" yaml:"lastUsedAt"`
	Stats      CategoryStats `json:"stats" yaml:"stats"`
}

// LearningSummary is a reportable view of a UserPattern.
type LearningSummary struct {
	UserID      string            `json:"userId" yaml:"userId"`
	Version     int64             `json:"version" yaml:"version"`
	LastUpdated time.Time         `json:"lastUpdated" yaml:"lastUpdated"`
	HistorySize int               `json:"historySize" yaml:"historySize"`
	Categories  []CategorySummary `json:"categories" yaml:"categories"`
}

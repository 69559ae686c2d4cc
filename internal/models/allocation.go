package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Allocation maps a category id to the amount assigned to it. Values are never negative.
type Allocation map[string]decimal.Decimal

// Has reports whether the category already has a value.
func (a Allocation) Has(categoryID string) bool {
	_, ok := a[categoryID]
	return ok
}

// Sum returns the total of all allocated amounts.
func (a Allocation) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, id := range a.IDs() {
		total = total.Add(a[id])
	}
	return total
}

// IDs returns the allocated category ids in lexical order.
func (a Allocation) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for id, v := range a {
		out[id] = v
	}
	return out
}

// String renders the allocation as "id=amount" pairs separated by semicolons.
func (a Allocation) String() string {
	parts := make([]string, 0, len(a))
	for _, id := range a.IDs() {
		parts = append(parts, id+"="+a[id].String())
	}
	return strings.Join(parts, ";")
}

package models

// Budget buckets group categories for downstream budgeting.
const (
	BucketHousing        = "Housing"
	BucketTransportation = "Transportation"
	BucketDebt           = "Debt"
	BucketSavings        = "Savings"
	BucketInvestments    = "Investments"
	BucketFood           = "Food"
	BucketUtilities      = "Utilities"
	BucketInsurance      = "Insurance"
	BucketLifestyle      = "Lifestyle"
	BucketGiving         = "Giving"
)

// Built-in category ids.
const (
	CategoryHousing       = "housing"
	CategoryCar           = "car"
	CategoryCreditCards   = "credit_cards"
	CategorySavings       = "savings"
	CategoryEmergencyFund = "emergency_fund"
	CategoryInvestment    = "investment"
	CategoryGroceries     = "groceries"
	CategoryUtilities     = "utilities"
	CategoryInsurance     = "insurance"
	CategoryTransport     = "transportation"
	CategoryDebt          = "debt"
	CategoryEntertainment = "entertainment"
	CategoryGiving        = "giving"
)

// CategoryDefinition describes one budget category and the surface forms that name it.
// Keywords are matched case-insensitively, in order.
type CategoryDefinition struct {
	ID           string   `yaml:"id" json:"id"`
	Keywords     []string `yaml:"keywords" json:"keywords"`
	Icon         string   `yaml:"icon" json:"icon"`
	Label        string   `yaml:"label" json:"label"`
	BudgetBucket string   `yaml:"budget_bucket" json:"budgetBucket"`
}

// IsSavingsType reports whether money in this category is put aside rather than spent.
func (c CategoryDefinition) IsSavingsType() bool {
	return c.BudgetBucket == BucketSavings || c.BudgetBucket == BucketInvestments
}

// DisplayName returns the label, or the id when no label is set.
func (c CategoryDefinition) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Clone returns a copy that shares no slices with c.
func (c CategoryDefinition) Clone() CategoryDefinition {
	out := c
	out.Keywords = append([]string(nil), c.Keywords...)
	return out
}

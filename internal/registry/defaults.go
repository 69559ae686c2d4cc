package registry

import "fjacquet/paycheck-planner/internal/models"

// DefaultCategories returns the built-in table. Order defines matching precedence,
// so multi-word keywords come before the shorter words they contain.
func DefaultCategories() []models.CategoryDefinition {
	return []models.CategoryDefinition{
		{
			ID:           models.CategoryHousing,
			Keywords:     []string{"rent", "mortgage", "housing"},
			Icon:         "🏠",
			Label:        "Housing",
			BudgetBucket: models.BucketHousing,
		},
		{
			ID:           models.CategoryCar,
			Keywords:     []string{"car payment", "car loan", "auto loan", "car", "vehicle"},
			Icon:         "🚗",
			Label:        "Car Payment",
			BudgetBucket: models.BucketTransportation,
		},
		{
			ID:           models.CategoryCreditCards,
			Keywords:     []string{"credit cards", "credit card", "credit"},
			Icon:         "💳",
			Label:        "Credit Cards",
			BudgetBucket: models.BucketDebt,
		},
		{
			ID:           models.CategorySavings,
			Keywords:     []string{"savings", "saving", "save"},
			Icon:         "🐷",
			Label:        "Savings",
			BudgetBucket: models.BucketSavings,
		},
		{
			ID:           models.CategoryEmergencyFund,
			Keywords:     []string{"emergency fund", "emergency", "rainy day"},
			Icon:         "🛟",
			Label:        "Emergency Fund",
			BudgetBucket: models.BucketSavings,
		},
		{
			ID:           models.CategoryInvestment,
			Keywords:     []string{"investments", "investment", "investing", "invest", "stocks", "401k", "retirement"},
			Icon:         "📈",
			Label:        "Investments",
			BudgetBucket: models.BucketInvestments,
		},
		{
			ID:           models.CategoryGroceries,
			Keywords:     []string{"groceries", "grocery", "food"},
			Icon:         "🛒",
			Label:        "Groceries",
			BudgetBucket: models.BucketFood,
		},
		{
			ID:           models.CategoryUtilities,
			Keywords:     []string{"utilities", "utility", "electricity", "electric", "water", "internet", "phone bill"},
			Icon:         "💡",
			Label:        "Utilities",
			BudgetBucket: models.BucketUtilities,
		},
		{
			ID:           models.CategoryInsurance,
			Keywords:     []string{"insurance"},
			Icon:         "🛡️",
			Label:        "Insurance",
			BudgetBucket: models.BucketInsurance,
		},
		{
			ID:           models.CategoryTransport,
			Keywords:     []string{"transportation", "transit", "gas", "fuel", "commute"},
			Icon:         "⛽",
			Label:        "Transportation",
			BudgetBucket: models.BucketTransportation,
		},
		{
			ID:           models.CategoryDebt,
			Keywords:     []string{"student loans", "student loan", "loans", "loan", "debt"},
			Icon:         "🎓",
			Label:        "Loans & Debt",
			BudgetBucket: models.BucketDebt,
		},
		{
			ID:           models.CategoryEntertainment,
			Keywords:     []string{"entertainment", "dining out", "restaurants", "fun money", "fun"},
			Icon:         "🎉",
			Label:        "Entertainment",
			BudgetBucket: models.BucketLifestyle,
		},
		{
			ID:           models.CategoryGiving,
			Keywords:     []string{"charity", "donations", "donation", "tithe", "giving"},
			Icon:         "🤝",
			Label:        "Giving",
			BudgetBucket: models.BucketGiving,
		},
	}
}

package common

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/paycheck-planner/internal/container"
	"fjacquet/paycheck-planner/internal/currencyutils"
	"fjacquet/paycheck-planner/internal/extraction"
	"fjacquet/paycheck-planner/internal/learning"

	"github.com/shopspring/decimal"
)

// ErrLearningDisabled is returned by commands that only work on learned habits.
var ErrLearningDisabled = errors.New("learning is disabled (learning.enabled is false)")

// OpenEngine loads the learning state of userID.
func OpenEngine(ctx context.Context, c *container.Container, userID string) (*learning.Engine, error) {
	if !c.GetConfig().Learning.Enabled {
		return nil, ErrLearningDisabled
	}
	return c.OpenEngine(ctx, userID), nil
}

// ResolveIncome returns the --income flag value when set, otherwise the
// income found in text. Zero means no income is known.
func ResolveIncome(flagValue, text string) (decimal.Decimal, error) {
	if flagValue == "" {
		return extraction.FindIncome(text), nil
	}
	income, err := currencyutils.ParseAmount(flagValue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid income: %w", err)
	}
	if income.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid income: %s is negative", flagValue)
	}
	return income, nil
}

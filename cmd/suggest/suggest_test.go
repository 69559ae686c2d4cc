package suggest

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/config"
	"fjacquet/paycheck-planner/internal/container"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContainer(t *testing.T, env map[string]string) *container.Container {
	t.Helper()
	chdirForTest(t, t.TempDir())
	t.Setenv("PLANNER_DATA_DIRECTORY", t.TempDir())
	t.Setenv("PLANNER_STORE_BACKEND", "memory")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() {
		root.SetContainer(nil)
		_ = c.Close()
	})
	return c
}

// seed accepts n plans putting $500 of a $5000 paycheck on the car payment.
func seed(t *testing.T, c *container.Container, n int) {
	t.Helper()
	ctx := context.Background()
	e := c.OpenEngine(ctx, "")
	for i := 0; i < n; i++ {
		require.NoError(t, e.RecordAcceptance(ctx, "My paycheck is $5000. $500 for car payment", models.ParseResult{
			Income:      decimal.NewFromInt(5000),
			Allocations: models.Allocation{"car": decimal.NewFromInt(500)},
			Confidence:  80,
		}))
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer func() { income, format = "", "text" }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	err := suggestFunc(cmd, args)
	return out.String(), err
}

func TestSuggestFunc_NoHistory(t *testing.T) {
	setupContainer(t, nil)

	out, err := run(t, "My paycheck is $5000")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions yet.")
}

func TestSuggestFunc_UsualPercentage(t *testing.T) {
	c := setupContainer(t, nil)
	seed(t, c, 3)

	income = "6000"
	out, err := run(t, "rent $1500")
	require.NoError(t, err)
	assert.Contains(t, out, "Car Payment: $600 (you usually allocate 10% here)")
	assert.Contains(t, out, "Don't forget Car Payment: it was part of 3 of your plans.")
}

func TestSuggestFunc_IncomeFromText(t *testing.T) {
	c := setupContainer(t, nil)
	seed(t, c, 1)

	out, err := run(t, "I earned $4000 and $400 for my car payment")
	require.NoError(t, err)
	assert.Contains(t, out, "Car Payment: $400")
	assert.NotContains(t, out, "Don't forget")
}

func TestSuggestFunc_JSON(t *testing.T) {
	c := setupContainer(t, nil)
	seed(t, c, 2)

	format = "json"
	income = "1000"
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": "default"`)
	assert.Contains(t, out, "Car Payment: $100")
}

func TestSuggestFunc_Errors(t *testing.T) {
	setupContainer(t, map[string]string{"PLANNER_LEARNING_ENABLED": "false"})

	_, err := run(t)
	assert.ErrorContains(t, err, "learning is disabled")

	income = "-5"
	_, err = run(t)
	assert.ErrorContains(t, err, "invalid income")

	format = "csv"
	_, err = run(t)
	assert.ErrorContains(t, err, "unsupported output format")
}

// Package breakdown handles the breakdown command
package breakdown

import (
	"errors"
	"strings"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/cli"
	"fjacquet/paycheck-planner/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	income string
	format string
)

// Breakdown is the report form of the command output.
type Breakdown struct {
	UserID     string                              `json:"userId" yaml:"userId"`
	Income     decimal.Decimal                     `json:"income" yaml:"income"`
	Categories map[string]models.CategoryBreakdown `json:"categories" yaml:"categories"`
}

// Cmd represents the breakdown command
var Cmd = &cobra.Command{
	Use:   "breakdown [instruction]",
	Short: "Show how you usually split an income",
	Long: `Scale your usual percentages to an income. Only categories that were part
of enough accepted plans (learning.min_support) are shown.

Example:
  paycheck-planner breakdown --income 6000`,
	RunE: breakdownFunc,
}

func init() {
	Cmd.Flags().StringVar(&income, "income", "", "Income to split (default: found in the text)")
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
}

func breakdownFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	inc, err := common.ResolveIncome(income, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !inc.IsPositive() {
		return errors.New("an income is required: use --income or mention your paycheck")
	}

	engine, err := common.OpenEngine(root.Context(cmd), c, root.SharedFlags.User)
	if err != nil {
		return err
	}

	out, closeOut, err := root.OpenOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeOut(); err != nil {
			root.Log.WithError(err).Warn("Failed to close output")
		}
	}()

	result := Breakdown{
		UserID:     engine.Summary().UserID,
		Income:     inc,
		Categories: engine.TypicalBreakdown(inc),
	}
	return common.WriteValue(out, c, result, format, func() error {
		return cli.RenderBreakdown(out, inc, result.Categories, c.GetRegistry())
	})
}

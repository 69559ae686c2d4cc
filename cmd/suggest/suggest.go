// Package suggest handles the suggest command
package suggest

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/cli"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	income string
	format string
)

// Suggestions is the report form of the command output.
type Suggestions struct {
	UserID      string          `json:"userId" yaml:"userId"`
	Income      decimal.Decimal `json:"income" yaml:"income"`
	Suggestions []string        `json:"suggestions" yaml:"suggestions"`
}

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest [partial instruction]",
	Short: "Suggest amounts from your usual habits",
	Long: `Propose amounts for the categories you usually fund and remind you of
favourites missing from what you have written so far.

Example:
  paycheck-planner suggest "My paycheck is $5000. Rent is $1500"
  paycheck-planner suggest --income 5000`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().StringVar(&income, "income", "", "Income to scale suggestions to (default: found in the text)")
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	inc, err := common.ResolveIncome(income, text)
	if err != nil {
		return err
	}

	ctx := root.Context(cmd)
	engine, err := common.OpenEngine(ctx, c, root.SharedFlags.User)
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

	result := Suggestions{
		UserID:      engine.Summary().UserID,
		Income:      inc,
		Suggestions: engine.Suggest(text, inc),
	}
	return common.WriteValue(out, c, result, format, func() error {
		return renderText(out, result)
	})
}

func renderText(w io.Writer, s Suggestions) error {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Suggestions for "+s.UserID) + "\n")
	if len(s.Suggestions) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No suggestions yet. Accept a few plans first.") + "\n")
	}
	for _, line := range s.Suggestions {
		fmt.Fprintf(&b, "%s %s\n", cli.IdeaIcon, line)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

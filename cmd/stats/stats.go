// Package stats handles the stats command
package stats

import (
	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/cli"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what has been learned about a user",
	Long: `Show the categories a user funds most often with their mean, median and
usual share of income.

Example:
  paycheck-planner stats --user alice --format yaml`,
	Args: cobra.NoArgs,
	RunE: statsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
}

func statsFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
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

	summary := engine.Summary()
	return common.WriteValue(out, c, summary, format, func() error {
		return cli.RenderSummary(out, summary)
	})
}

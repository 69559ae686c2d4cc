// Package history handles the history command
package history

import (
	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	internalcommon "fjacquet/paycheck-planner/internal/common"
	"fjacquet/paycheck-planner/internal/logging"

	"github.com/spf13/cobra"
)

var limit int

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Export accepted instructions as CSV",
	Long: `Write the accepted instructions of a user as CSV, oldest first.

Example:
  paycheck-planner history --limit 10 -o history.csv`,
	Args: cobra.NoArgs,
	RunE: historyFunc,
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only export the most recent entries (0 for all)")
}

func historyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	engine, err := common.OpenEngine(root.Context(cmd), c, root.SharedFlags.User)
	if err != nil {
		return err
	}

	entries := engine.Pattern().InputHistory
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
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

	if err := internalcommon.WriteHistory(out, internalcommon.NewHistoryRows(entries)); err != nil {
		return err
	}
	c.GetLogger().Debug("History exported", logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return nil
}

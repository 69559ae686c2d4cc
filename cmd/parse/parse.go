// Package parse handles the parse command
package parse

import (
	"strings"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"

	"github.com/spf13/cobra"
)

var (
	format string
	accept bool
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse [instruction]",
	Short: "Parse one budget instruction",
	Long: `Parse a plain-language budget instruction into income and per-category amounts.

Example:
  paycheck-planner parse "I got $6000 for my paycheck. Allocate $1500 to rent and the rest to savings."
  paycheck-planner parse --accept -i instruction.txt`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
	Cmd.Flags().BoolVarP(&accept, "accept", "a", false, "Accept the plan and learn from it")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	text, err := root.ReadText(cmd, args)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)

	out, closeOut, err := root.OpenOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeOut(); err != nil {
			root.Log.WithError(err).Warn("Failed to close output")
		}
	}()

	ctx := root.Context(cmd)
	p := common.NewProcessor(ctx, c, out, common.Options{
		Format: format,
		Accept: accept,
		UserID: root.SharedFlags.User,
	})
	_, err = p.Process(ctx, text)
	return err
}

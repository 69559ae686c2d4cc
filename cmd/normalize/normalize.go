// Package normalize handles the normalize command
package normalize

import (
	"fmt"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"

	"github.com/spf13/cobra"
)

var parseAfter bool

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize [transcript]",
	Short: "Clean up a spoken transcript",
	Long: `Rewrite a speech transcript into parser-friendly text: spoken numbers become
digits, filler words are dropped and amounts spoken next to a category get a "$".

Example:
  paycheck-planner normalize "um I got six thousand dollars and rent fifteen hundred"`,
	RunE: normalizeFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&parseAfter, "parse", "p", false, "Also parse the normalized text")
}

func normalizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	raw, err := root.ReadText(cmd, args)
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

	text := c.GetNormalizer().Normalize(raw)
	if _, err := fmt.Fprintln(out, text); err != nil {
		return err
	}
	if !parseAfter || text == "" {
		return nil
	}

	ctx := root.Context(cmd)
	p := common.NewProcessor(ctx, c, out, common.Options{Format: common.FormatText, UserID: root.SharedFlags.User})
	_, err = p.Process(ctx, text)
	return err
}

// Package batch handles batch parsing of instruction files
package batch

import (
	"errors"
	"fmt"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	internalcommon "fjacquet/paycheck-planner/internal/common"
	"fjacquet/paycheck-planner/internal/logging"

	"github.com/spf13/cobra"
)

var personalize bool

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse a CSV file of instructions",
	Long: `Parse every instruction of a CSV file and write one result row per instruction.

The input needs a "text" column and may have an "id" column. Results carry the
income, the allocations, the confidence score and whether the plan needs review.
Batch results are never learned from.

Example:
  paycheck-planner batch -i instructions.csv -o results.csv`,
	Args: cobra.NoArgs,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&personalize, "personalize", "p", true, "Add suggestions from the user's learned habits")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger()

	source := root.SharedFlags.Input
	if source == "" {
		source = "stdin"
	}
	in, closeIn, err := root.OpenInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()

	rows, err := internalcommon.ReadInstructions(in, source, logger)
	if err != nil {
		return err
	}
	logger.Info("Parsing instructions",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	var enricher internalcommon.Enricher
	if personalize {
		engine, err := common.OpenEngine(root.Context(cmd), c, root.SharedFlags.User)
		switch {
		case errors.Is(err, common.ErrLearningDisabled):
			logger.Debug("Learning is disabled, results are not personalized")
		case err != nil:
			return err
		default:
			enricher = engine
		}
	}

	lowConfidence := c.GetConfig().Parser.LowConfidence
	results, stats := internalcommon.ParseInstructionsWithStats(rows, c.GetParser(), enricher, lowConfidence, logger, source)

	out, closeOut, err := root.OpenOutput(cmd)
	if err != nil {
		return err
	}
	if err := internalcommon.WriteResults(out, results); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("error closing output: %w", err)
	}

	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Parsed %d instructions: %d confident, %d to review, %d empty\n",
		stats.Total, stats.Confident, stats.LowConfidence, stats.Empty)
	return err
}

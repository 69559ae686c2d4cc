// Package dictate handles the dictate command
package dictate

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"fjacquet/paycheck-planner/cmd/common"
	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/cli"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/transcript"

	"github.com/spf13/cobra"
)

var (
	format string
	accept bool
)

// Cmd represents the dictate command
var Cmd = &cobra.Command{
	Use:   "dictate",
	Short: "Plan from a stream of speech recognition results",
	Long: `Read speech recognition results as JSON lines from --input or stdin.
Each line looks like {"transcript": "rent fifteen hundred", "isFinal": true}.
Interim results are shown as a preview; every final result is normalized and parsed.
A line such as {"error": "network lost", "code": "network"} ends the session.`,
	RunE: dictateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
	Cmd.Flags().BoolVarP(&accept, "accept", "a", false, "Accept every final plan and learn from it")
}

func dictateFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	in, closeIn, err := root.OpenInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := root.OpenOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeOut(); err != nil {
			root.Log.WithError(err).Warn("Failed to close output")
		}
	}()

	ctx, stop := signal.NotifyContext(root.Context(cmd), os.Interrupt)
	defer stop()

	logger := c.GetLogger()
	processor := common.NewProcessor(ctx, c, out, common.Options{
		Format: format,
		Accept: accept,
		UserID: root.SharedFlags.User,
	})

	finals := 0
	session := transcript.NewSession(c.GetNormalizer(), transcript.Handlers{
		OnInterim: func(preview string) {
			if format == common.FormatText {
				_, _ = fmt.Fprintln(out, cli.SubtleStyle.Render("… "+preview))
			}
		},
		OnFinal: func(text string) {
			finals++
			if format == common.FormatText {
				_, _ = fmt.Fprintln(out, cli.FormatTitle("Heard: ")+text)
			}
			if _, err := processor.Process(ctx, text); err != nil {
				logger.WithError(err).Error("Failed to process final transcript")
			}
		},
	}, logger)

	events, errs := transcript.DecodeEvents(ctx, in)
	err = session.Run(ctx, events, errs)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		logger.Info("Dictation interrupted")
		return nil
	}
	logger.Debug("Dictation finished",
		logging.Field{Key: logging.FieldSessionID, Value: session.ID()},
		logging.Field{Key: logging.FieldCount, Value: finals})
	return err
}

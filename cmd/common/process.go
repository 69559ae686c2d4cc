// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/paycheck-planner/internal/cli"
	"fjacquet/paycheck-planner/internal/container"
	"fjacquet/paycheck-planner/internal/learning"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/report"
)

// FormatText is the human readable output format; the others come from the report package.
const FormatText = "text"

// ValidateFormat checks an output format flag.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, report.FormatJSON, report.FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (must be text, json or yaml)", format)
	}
}

// WriteValue renders v as a report, or calls renderText for the text format.
func WriteValue(w io.Writer, c *container.Container, v interface{}, format string, renderText func() error) error {
	if format == FormatText {
		return renderText()
	}
	out, err := c.GetReportGenerator().GenerateReport(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Options control how instructions are processed.
type Options struct {
	Format string
	Accept bool
	UserID string
}

// Processor parses instructions, adds personalized suggestions and, when
// asked to, learns from the result.
type Processor struct {
	container *container.Container
	engine    *learning.Engine
	out       io.Writer
	opts      Options
	logger    logging.Logger
}

// NewProcessor prepares a processor. The user's learning state is loaded
// once here when learning is enabled.
func NewProcessor(ctx context.Context, c *container.Container, out io.Writer, opts Options) *Processor {
	p := &Processor{
		container: c,
		out:       out,
		opts:      opts,
		logger:    c.GetLogger(),
	}
	if c.GetConfig().Learning.Enabled {
		p.engine = c.OpenEngine(ctx, opts.UserID)
	}
	return p
}

// Engine returns the learning engine, or nil when learning is disabled.
func (p *Processor) Engine() *learning.Engine {
	return p.engine
}

// Process handles one instruction and writes the result.
func (p *Processor) Process(ctx context.Context, text string) (models.ParseResult, error) {
	result := p.container.GetParser().Parse(text)
	if p.engine != nil {
		result = p.engine.Enrich(text, result)
	}

	lowConfidence := p.container.GetConfig().Parser.LowConfidence
	err := WriteValue(p.out, p.container, result, p.opts.Format, func() error {
		return cli.RenderResult(p.out, result, p.container.GetRegistry(), lowConfidence)
	})
	if err != nil {
		return result, err
	}

	if p.opts.Accept {
		p.accept(ctx, text, result)
	}
	return result, nil
}

func (p *Processor) accept(ctx context.Context, text string, result models.ParseResult) {
	if p.engine == nil {
		p.logger.Warn("Learning is disabled, the plan was not recorded")
		return
	}
	if len(result.Allocations) == 0 {
		p.logger.Info("Nothing to learn from a plan without allocations")
		return
	}

	// A failed save still leaves the plan learned for this session.
	if err := p.engine.RecordAcceptance(ctx, text, result); err != nil {
		p.logger.WithError(err).Warn("Plan accepted but learning state could not be saved")
		return
	}
	if p.opts.Format == FormatText {
		_, _ = fmt.Fprintln(p.out, cli.FormatSuccess("Plan accepted"))
	}
}

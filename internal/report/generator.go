// Package report renders learning state and parse results as machine-readable documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fjacquet/paycheck-planner/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator renders reports in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{
		logger: logging.OrDefault(logger).WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders v in the given format (json or yaml).
func (g *ReportGenerator) GenerateReport(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSONReport(v)
	case FormatYAML:
		return g.generateYAMLReport(v)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

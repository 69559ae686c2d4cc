package common

import (
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/parser"
)

// Enricher adds personalized suggestions to a parse result.
type Enricher interface {
	Enrich(text string, result models.ParseResult) models.ParseResult
}

// ParseInstructionsWithStats parses every row and tracks how many results are
// confident, need review or found nothing. enricher may be nil.
func ParseInstructionsWithStats(
	rows []InstructionRow,
	p parser.InstructionParser,
	enricher Enricher,
	lowConfidence int,
	logger logging.Logger,
	source string,
) ([]ResultRow, models.ParseStats) {
	logger = logging.OrDefault(logger)

	var stats models.ParseStats
	out := make([]ResultRow, 0, len(rows))

	for _, row := range rows {
		result := p.Parse(row.Text)
		if enricher != nil {
			result = enricher.Enrich(row.Text, result)
		}
		stats.Add(result, lowConfidence)

		if result.NeedsReview(lowConfidence) {
			logger.Debug("Instruction needs review",
				logging.Field{Key: "id", Value: row.ID},
				logging.Field{Key: logging.FieldConfidence, Value: result.Confidence})
		}
		out = append(out, NewResultRow(row, result, lowConfidence))
	}

	stats.LogSummary(logger, source)
	return out, stats
}

package models

import (
	"fjacquet/paycheck-planner/internal/logging"
)

// ParseStats tracks outcomes over a batch of parsed instructions.
type ParseStats struct {
	Total         int // instructions processed
	Confident     int // at or above the review threshold
	LowConfidence int // below the review threshold, with at least one allocation
	Empty         int // no allocation found
}

// Add records one parse result against the review threshold.
func (s *ParseStats) Add(result ParseResult, threshold int) {
	s.Total++
	switch {
	case len(result.Allocations) == 0:
		s.Empty++
	case result.NeedsReview(threshold):
		s.LowConfidence++
	default:
		s.Confident++
	}
}

// ConfidentRate returns the share of confident results as a percentage.
func (s ParseStats) ConfidentRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Confident) / float64(s.Total) * 100.0
}

// LogSummary logs a summary of the batch.
func (s ParseStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Batch parse summary",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: s.Total},
		logging.Field{Key: "confident", Value: s.Confident},
		logging.Field{Key: "low_confidence", Value: s.LowConfidence},
		logging.Field{Key: "empty", Value: s.Empty},
		logging.Field{Key: "confident_rate", Value: s.ConfidentRate()},
	)
}

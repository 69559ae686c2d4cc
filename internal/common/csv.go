// Package common provides the CSV input and output shared by the batch and history commands.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is used for every CSV read and written by the planner.
var Delimiter rune = ','

// SuggestionSeparator joins several suggestions in one CSV cell.
const SuggestionSeparator = " | "

// SetDelimiter changes the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// InstructionRow is one line of a batch input file. Only the text column is required.
type InstructionRow struct {
	ID   string `csv:"id,omitempty"`
	Text string `csv:"text"`
}

// ResultRow is one parsed instruction in a batch output file.
type ResultRow struct {
	ID          string `csv:"id"`
	Text        string `csv:"text"`
	Income      string `csv:"income"`
	Allocations string `csv:"allocations"`
	Total       string `csv:"total"`
	Confidence  int    `csv:"confidence"`
	NeedsReview bool   `csv:"needs_review"`
	Suggestions string `csv:"suggestions"`
}

// HistoryRow is one accepted instruction in a history export.
type HistoryRow struct {
	Timestamp  string `csv:"timestamp"`
	Income     string `csv:"income"`
	Categories string `csv:"categories"`
	Text       string `csv:"text"`
}

// NewResultRow flattens a parse result into its CSV form.
func NewResultRow(in InstructionRow, result models.ParseResult, lowConfidence int) ResultRow {
	return ResultRow{
		ID:          in.ID,
		Text:        in.Text,
		Income:      result.Income.StringFixed(2),
		Allocations: result.Allocations.String(),
		Total:       result.Allocations.Sum().StringFixed(2),
		Confidence:  result.Confidence,
		NeedsReview: result.NeedsReview(lowConfidence),
		Suggestions: strings.Join(result.Suggestions, SuggestionSeparator),
	}
}

// NewHistoryRows converts the input history of a pattern, oldest first.
func NewHistoryRows(history []models.HistoryEntry) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for _, h := range history {
		rows = append(rows, HistoryRow{
			Timestamp:  h.Timestamp.UTC().Format(time.RFC3339),
			Income:     h.Income.StringFixed(2),
			Categories: strings.Join(h.CategoryIDsUsed, ";"),
			Text:       h.RawText,
		})
	}
	return rows
}

// ReadInstructions reads batch input from r. Rows with blank text are skipped.
// source names the input in errors and logs.
func ReadInstructions(r io.Reader, source string, logger logging.Logger) ([]InstructionRow, error) {
	logger = logging.OrDefault(logger)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}

	if err := checkHeader(data, source, "text"); err != nil {
		return nil, err
	}

	var rows []InstructionRow
	if err := gocsv.UnmarshalCSV(newReader(bytes.NewReader(data)), &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV input")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	out := rows[:0]
	for i, row := range rows {
		row.Text = strings.TrimSpace(row.Text)
		if row.Text == "" {
			continue
		}
		if row.ID == "" {
			row.ID = strconv.Itoa(i + 1)
		}
		out = append(out, row)
	}

	logger.Info("Read instructions",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: len(out)})
	return out, nil
}

// ReadInstructionsFile reads batch input from a file.
func ReadInstructionsFile(filePath string, logger logging.Logger) ([]InstructionRow, error) {
	file, err := os.Open(filePath) // #nosec G304 -- user supplied input file
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.OrDefault(logger).WithError(err).Warn("Failed to close file")
		}
	}()
	return ReadInstructions(file, filePath, logger)
}

// WriteResults writes result rows to w.
func WriteResults(w io.Writer, rows []ResultRow) error {
	return writeCSV(w, rows)
}

// WriteHistory writes history rows to w.
func WriteHistory(w io.Writer, rows []HistoryRow) error {
	return writeCSV(w, rows)
}

// WriteResultsFile writes result rows to csvFile, creating its directory if needed.
func WriteResultsFile(rows []ResultRow, csvFile string, logger logging.Logger) error {
	logger = logging.OrDefault(logger)
	if rows == nil {
		return fmt.Errorf("cannot write nil results to CSV")
	}

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- user supplied output file
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteResults(file, rows); err != nil {
		return err
	}

	logger.Info("Wrote results",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(Delimiter)})
	return nil
}

func writeCSV(w io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

func checkHeader(data []byte, source string, required string) error {
	header, err := newReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return &apperror.InvalidFormatError{FilePath: source, ExpectedFormat: "CSV with a '" + required + "' column", Msg: "file is empty"}
	}
	if err != nil {
		return &apperror.InvalidFormatError{FilePath: source, ExpectedFormat: "CSV", Msg: err.Error()}
	}
	for _, h := range header {
		if strings.TrimSpace(h) == required {
			return nil
		}
	}
	return &apperror.InvalidFormatError{
		FilePath:       source,
		ExpectedFormat: "CSV with a '" + required + "' column",
		Msg:            "missing column '" + required + "'",
	}
}

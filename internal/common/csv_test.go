package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"
	"fjacquet/paycheck-planner/internal/parser"
	"fjacquet/paycheck-planner/internal/registry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInstructions(t *testing.T) {
	input := `id,text
a1,"My paycheck is $6000, rent is $1500"
,   
,Groceries 15%
`
	rows, err := ReadInstructions(strings.NewReader(input), "input.csv", logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank text rows are skipped")
	assert.Equal(t, "a1", rows[0].ID)
	assert.Equal(t, "My paycheck is $6000, rent is $1500", rows[0].Text)
	assert.Equal(t, "3", rows[1].ID, "missing ids follow the row number")
	assert.Equal(t, "Groceries 15%", rows[1].Text)
}

func TestReadInstructions_TextOnly(t *testing.T) {
	rows, err := ReadInstructions(strings.NewReader("text\nrent $1200\n"), "stdin", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ID)
}

func TestReadInstructions_InvalidFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"missing column", "instruction\nrent $1200\n", "missing column 'text'"},
		{"empty file", "", "file is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadInstructions(strings.NewReader(tt.input), "bad.csv", nil)
			var formatErr *apperror.InvalidFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "bad.csv", formatErr.FilePath)
			assert.Contains(t, formatErr.Msg, tt.msg)
		})
	}
}

func TestReadInstructionsFile_Missing(t *testing.T) {
	_, err := ReadInstructionsFile(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	result := models.ParseResult{
		Income: decimal.NewFromInt(6000),
		Allocations: models.Allocation{
			"housing": decimal.NewFromInt(1500),
			"car":     decimal.NewFromInt(600),
		},
		Confidence:  40,
		Suggestions: []string{"one", "two"},
	}
	row := NewResultRow(InstructionRow{ID: "7", Text: "rent 1500, car 600"}, result, 50)

	assert.Equal(t, "6000.00", row.Income)
	assert.Equal(t, "car=600;housing=1500", row.Allocations)
	assert.Equal(t, "2100.00", row.Total)
	assert.True(t, row.NeedsReview)
	assert.Equal(t, "one | two", row.Suggestions)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []ResultRow{row}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,text,income,allocations,total,confidence,needs_review,suggestions", lines[0])
	assert.Equal(t, `7,"rent 1500, car 600",6000.00,car=600;housing=1500,2100.00,40,true,one | two`, lines[1])
}

func TestWriteResults_CustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []ResultRow{{ID: "1", Text: "x"}}))
	assert.True(t, strings.HasPrefix(buf.String(), "id;text;income;"))
}

func TestWriteResultsFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteResultsFile([]ResultRow{{ID: "1", Text: "rent 1500"}}, out, logging.NewMockLogger()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rent 1500")

	assert.Error(t, WriteResultsFile(nil, out, nil))
}

func TestWriteHistory(t *testing.T) {
	rows := NewHistoryRows([]models.HistoryEntry{{
		RawText:         "rent 1500",
		Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Income:          decimal.NewFromInt(6000),
		CategoryIDsUsed: []string{"housing", "savings"},
	}})

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, rows))
	assert.Equal(t, "timestamp,income,categories,text\n2026-01-02T03:04:05Z,6000.00,housing;savings,rent 1500\n", buf.String())
}

type suffixEnricher struct{}

func (suffixEnricher) Enrich(_ string, r models.ParseResult) models.ParseResult {
	r = r.Clone()
	r.Suggestions = append(r.Suggestions, "personal")
	return r
}

func TestParseInstructionsWithStats(t *testing.T) {
	p, err := parser.NewParser(registry.Default(), logging.NewMockLogger())
	require.NoError(t, err)

	rows := []InstructionRow{
		{ID: "1", Text: "I got $6000 for my paycheck. Allocate $1500 to rent, $600 for car payment, $400 for credit cards, and the rest to savings."},
		{ID: "2", Text: "nothing to see here"},
	}
	logger := logging.NewMockLogger()
	results, stats := ParseInstructionsWithStats(rows, p, suffixEnricher{}, 50, logger, "test")

	require.Len(t, results, 2)
	assert.Equal(t, "car=600;credit_cards=400;housing=1500;savings=3500", results[0].Allocations)
	assert.False(t, results[0].NeedsReview)
	assert.True(t, strings.HasSuffix(results[1].Suggestions, "personal"))

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Confident)
	assert.Equal(t, 1, stats.Empty)
	assert.True(t, logger.HasEntry("INFO", "Batch parse summary"))
}

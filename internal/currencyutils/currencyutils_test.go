package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Empty string", "", "0", false},
		{"Dollar sign", "$1500", "1500", false},
		{"Thousands separator", "$6,000.00", "6000", false},
		{"Dollar sign with space", "$ 42.50", "42.5", false},
		{"Dollars word", "500 dollars", "500", false},
		{"Singular dollar", "1 dollar", "1", false},
		{"Percentage", "25%", "25", false},
		{"Non-numeric", "lots", "0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tc.expected).Equal(result), "expected %s but got %s", tc.expected, result)
		})
	}
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$1500", FormatDollars(dec("1500.00")))
	assert.Equal(t, "$99.50", FormatDollars(dec("99.5")))
	assert.Equal(t, "$0", FormatDollars(decimal.Zero))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25%", FormatPercent(dec("25.00")))
	assert.Equal(t, "12.5%", FormatPercent(dec("12.5")))
	assert.Equal(t, "33.33%", FormatPercent(dec("33.333")))
}

func TestPercentOfAndShareOf(t *testing.T) {
	assert.Equal(t, "1000", PercentOf(dec("4000"), dec("25")).String())
	assert.Equal(t, "25", ShareOf(dec("1000"), dec("4000")).String())
	assert.Equal(t, "33.33", ShareOf(dec("1"), dec("3")).String())
	assert.True(t, ShareOf(dec("10"), decimal.Zero).IsZero())
}

func TestMeanAndMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		mean   string
		median string
	}{
		{"empty", nil, "0", "0"},
		{"single", []string{"600"}, "600", "600"},
		{"odd count", []string{"300", "100", "200"}, "200", "200"},
		{"even count", []string{"100", "400", "200", "300"}, "250", "250"},
		{"rounding", []string{"1", "1", "2"}, "1.33", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]decimal.Decimal, 0, len(tt.values))
			for _, v := range tt.values {
				values = append(values, dec(v))
			}
			assert.True(t, dec(tt.mean).Equal(Mean(values)), "mean: got %s", Mean(values))
			assert.True(t, dec(tt.median).Equal(Median(values)), "median: got %s", Median(values))
		})
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateKey(t *testing.T) {
	date := time.Date(2025, time.January, 1, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, "25_01_01", FormatDateKey(date))

	date = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "24_12_31", FormatDateKey(date))
}

func TestFormatTimestamp(t *testing.T) {
	date := time.Date(2025, time.January, 1, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, "25_01_01 13:45:12", FormatTimestamp(date))

	// Sub-second precision is dropped, not rounded up
	date = time.Date(2025, time.March, 7, 9, 5, 3, 999_000_000, time.UTC)
	assert.Equal(t, "25_03_07 09:05:03", FormatTimestamp(date))
}

func TestParseTimestampRoundTrip(t *testing.T) {
	original := time.Date(2025, time.April, 27, 18, 30, 45, 0, time.UTC)

	parsed, err := ParseTimestamp(FormatTimestamp(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}

func TestParseTimestampRejectsDateKey(t *testing.T) {
	_, err := ParseTimestamp("25_01_01")
	assert.Error(t, err)
}

func TestValidDateKey(t *testing.T) {
	assert.True(t, ValidDateKey("25_01_01"))
	assert.True(t, ValidDateKey("24_12_31"))
	assert.False(t, ValidDateKey("2025_01_01"))
	assert.False(t, ValidDateKey("25-01-01"))
	assert.False(t, ValidDateKey("25_13_01"))
	assert.False(t, ValidDateKey(""))
}

package timeparsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)

func TestParseRFC3339(t *testing.T) {
	got, err := Parse("2026-09-01T12:00:00Z", testNow)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))
}

func TestParseDateOnlyMeansEndOfDay(t *testing.T) {
	got, err := Parse("2026-09-01", testNow)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)))
}

func TestParseCompactDurations(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"+6h", testNow.Add(6 * time.Hour)},
		{"6h", testNow.Add(6 * time.Hour)},
		{"-1d", testNow.AddDate(0, 0, -1)},
		{"+2w", testNow.AddDate(0, 0, 14)},
		{"3m", testNow.AddDate(0, 3, 0)},
		{"+1y", testNow.AddDate(1, 0, 0)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, testNow)
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, got.Equal(tt.want), "input %q: got %v, want %v", tt.in, got, tt.want)
	}
}

func TestIsCompactDuration(t *testing.T) {
	assert.True(t, IsCompactDuration("+2w"))
	assert.True(t, IsCompactDuration("3m"))
	assert.False(t, IsCompactDuration("2026-09-01"))
	assert.False(t, IsCompactDuration("next friday"))
	assert.False(t, IsCompactDuration("+2x"))
}

func TestParseCompactDurationRejectsGarbage(t *testing.T) {
	_, err := ParseCompactDuration("soon", testNow)
	assert.Error(t, err)
}

func TestParseNaturalLanguage(t *testing.T) {
	got, err := Parse("tomorrow", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, 1).Day(), got.Day())
	assert.True(t, got.After(testNow))
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("certainly not a date", testNow)
	assert.Error(t, err)
}

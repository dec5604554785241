package departures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	reference := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	t.Run("later time of day stays on the same date", func(t *testing.T) {
		parsed, err := ParseClockTime("14:30", reference)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("equal time of day stays on the same date", func(t *testing.T) {
		parsed, err := ParseClockTime("12:00", reference)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("earlier time of day rolls over to the next date", func(t *testing.T) {
		parsed, err := ParseClockTime("00:15", reference)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 16, 0, 15, 0, 0, time.UTC), parsed)
	})

	t.Run("seconds and milliseconds are zeroed", func(t *testing.T) {
		noisyReference := time.Date(2024, 5, 15, 12, 0, 42, 999, time.UTC)

		parsed, err := ParseClockTime("14:30", noisyReference)
		require.NoError(t, err)
		assert.Equal(t, 0, parsed.Second())
		assert.Equal(t, 0, parsed.Nanosecond())
	})

	t.Run("unparseable strings fail", func(t *testing.T) {
		for _, clockStr := range []string{"", "14", "14:30:00", "ab:cd", "14:xx"} {
			_, err := ParseClockTime(clockStr, reference)
			assert.Error(t, err, "expected %q to fail", clockStr)
		}
	})
}

func TestDelayMinutes(t *testing.T) {
	testCases := []struct {
		planned  string
		actual   string
		expected int
	}{
		{"10:00", "10:00", 0},
		{"00:00", "00:00", 0},
		{"23:59", "23:59", 0},
		{"10:00", "10:07", 7},
		{"10:07", "10:00", -7},
		// midnight wrap in both directions
		{"23:55", "00:05", 10},
		{"00:05", "23:55", -10},
	}

	for _, tc := range testCases {
		delay, err := DelayMinutes(tc.planned, tc.actual)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, delay, "planned %s actual %s", tc.planned, tc.actual)
	}

	_, err := DelayMinutes("bogus", "10:00")
	assert.Error(t, err)

	_, err = DelayMinutes("10:00", "bogus")
	assert.Error(t, err)
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "9:05", FormatClockTime(time.Date(2024, 5, 15, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, "15:30", FormatClockTime(time.Date(2024, 5, 15, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "0:00", FormatClockTime(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)))
}

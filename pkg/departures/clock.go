package departures

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClockTime interprets a "HH:MM" string as a time-of-day on the
// reference instant's calendar date. A result strictly before the reference
// rolls over to the next day, which covers departures past midnight.
func ParseClockTime(clockStr string, reference time.Time) (time.Time, error) {
	hour, minute, err := splitClock(clockStr)
	if err != nil {
		return time.Time{}, err
	}

	parsed := time.Date(reference.Year(), reference.Month(), reference.Day(), hour, minute, 0, 0, reference.Location())
	if parsed.Before(reference) {
		parsed = parsed.AddDate(0, 0, 1)
	}

	return parsed, nil
}

// DelayMinutes returns actual minus planned in minutes. Differences beyond
// twelve hours are treated as a midnight wrap in the other direction - a
// known approximation that misreads any genuine delay over twelve hours.
func DelayMinutes(plannedStr string, actualStr string) (int, error) {
	planned, err := MinutesOfDay(plannedStr)
	if err != nil {
		return 0, err
	}

	actual, err := MinutesOfDay(actualStr)
	if err != nil {
		return 0, err
	}

	diff := actual - planned
	if diff > 720 {
		diff -= 1440
	}
	if diff < -720 {
		diff += 1440
	}

	return diff, nil
}

// MinutesOfDay converts a "HH:MM" string into minutes since midnight.
func MinutesOfDay(clockStr string) (int, error) {
	hour, minute, err := splitClock(clockStr)
	if err != nil {
		return 0, err
	}

	return hour*60 + minute, nil
}

// FormatClockTime renders an instant the way the upstream clock strings
// look: hours unpadded, minutes zero-padded.
func FormatClockTime(instant time.Time) string {
	return fmt.Sprintf("%d:%02d", instant.Hour(), instant.Minute())
}

func splitClock(clockStr string) (int, int, error) {
	parts := strings.Split(clockStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("clock time %q is not in HH:MM form", clockStr)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("clock time %q has a non-numeric hour", clockStr)
	}

	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("clock time %q has a non-numeric minute", clockStr)
	}

	return hour, minute, nil
}

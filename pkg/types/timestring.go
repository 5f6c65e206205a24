package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a time of day in "HH:MM" format (24h)
type TimeString string

const minutesPerDay = 24 * 60

// NewTimeString creates a TimeString from a time.Time, keeping only hours and minutes
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time
func (t TimeString) Validate() error {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("invalid time format %q, expected HH:MM", string(t))
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return fmt.Errorf("invalid hours in %q", string(t))
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return fmt.Errorf("invalid minutes in %q", string(t))
	}

	return nil
}

// MinutesOfDay returns the number of minutes since midnight
func (t TimeString) MinutesOfDay() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	parts := strings.Split(string(t), ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes, nil
}

// AddMinutes returns a new TimeString shifted forward by the given number of minutes.
// Returns an error if the result crosses midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.MinutesOfDay()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time %q + %d minutes is outside the day", string(t), minutes)
	}
	// 24:00 допускается только как правая граница интервала
	if total == minutesPerDay {
		return "", fmt.Errorf("time %q + %d minutes crosses midnight", string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Lexicographic comparison is chronological for zero-padded HH:MM values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String returns the raw "HH:MM" value
func (t TimeString) String() string {
	return string(t)
}

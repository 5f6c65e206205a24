package slotengine

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the ISO calendar date layout the engine consumes.
const DateFormat = "2006-01-02"

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [...]string{
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

// DayHours is the canonical opening schedule for one weekday.
// Empty string means the boundary is unknown or absent.
type DayHours struct {
	Day          string // MONDAY..SUNDAY
	MorningOpen  string
	MorningClose string
	EveningOpen  string
	EveningClose string
}

// RawRow is one opening-hours row exactly as decoded from the catalog payload.
// Field names, key casing and value shapes vary across backend versions; all
// shape sniffing stays in NormalizeRow and NormalizeDay.
type RawRow map[string]any

// Lowercased key families per canonical field, legacy French names included.
var (
	rawDayKeys          = []string{"day", "jour"}
	rawMorningOpenKeys  = []string{"morningopen", "heureouverturematin"}
	rawMorningCloseKeys = []string{"morningclose", "heurefermeturematin"}
	rawEveningOpenKeys  = []string{"eveningopen", "heureouverturemidi"}
	rawEveningCloseKeys = []string{"eveningclose", "heurefermeturemidi"}
)

func (r RawRow) lookup(loweredKeys []string) any {
	for k, v := range r {
		lk := strings.ToLower(k)
		for _, want := range loweredKeys {
			if lk == want {
				return v
			}
		}
	}
	return nil
}

// NormalizeDay canonicalizes a weekday identifier: plain strings are
// uppercased, {name} objects contribute their name field, anything else is
// stringified. The result is only meaningful when it matches one of the
// canonical MONDAY..SUNDAY names.
func NormalizeDay(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToUpper(strings.TrimSpace(d))
	case map[string]any:
		if name, ok := d["name"]; ok {
			return strings.ToUpper(strings.TrimSpace(fmt.Sprint(name)))
		}
		return ""
	default:
		return strings.ToUpper(strings.TrimSpace(fmt.Sprint(d)))
	}
}

// NormalizeRow converts a raw catalog row into canonical DayHours.
// Boundaries that fail hour normalization come out empty.
func NormalizeRow(raw RawRow) DayHours {
	h := DayHours{Day: NormalizeDay(raw.lookup(rawDayKeys))}
	if v, ok := NormalizeHour(raw.lookup(rawMorningOpenKeys)); ok {
		h.MorningOpen = v
	}
	if v, ok := NormalizeHour(raw.lookup(rawMorningCloseKeys)); ok {
		h.MorningClose = v
	}
	if v, ok := NormalizeHour(raw.lookup(rawEveningOpenKeys)); ok {
		h.EveningOpen = v
	}
	if v, ok := NormalizeHour(raw.lookup(rawEveningCloseKeys)); ok {
		h.EveningClose = v
	}
	return h
}

// WeekdayName returns the canonical name for a date's weekday.
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}

// RowForDate finds the opening-hours row matching the target date's weekday.
// The first matching row wins; duplicate day rows are a data-quality issue the
// engine does not merge. Returns nil when no row matches. A malformed dateISO
// is a caller precondition violation and fails loudly.
func RowForDate(rows []RawRow, dateISO string) (*DayHours, error) {
	date, err := time.Parse(DateFormat, dateISO)
	if err != nil {
		return nil, fmt.Errorf("slotengine: invalid date %q: %w", dateISO, err)
	}

	target := WeekdayName(date)
	for _, raw := range rows {
		if NormalizeDay(raw.lookup(rawDayKeys)) != target {
			continue
		}
		h := NormalizeRow(raw)
		return &h, nil
	}
	return nil, nil
}

// Package slotengine computes bookable time slots for a calendar date from an
// establishment's opening hours, a legacy per-date reservation table and
// server-computed availability results.
//
// The engine is pure and dependency-free: every function is a stateless
// transform over its inputs, safe for concurrent use. Malformed upstream data
// (unknown hour shapes, missing pairs, bad day names) degrades to "absent"
// instead of failing; only a malformed target date or a zero clock is a loud
// error, since those are caller preconditions.
package slotengine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HourParts is the typed variant of the {hour, minute} payload shape.
type HourParts struct {
	Hour   int
	Minute int
}

// Key families the upstream catalog is known to use for object-shaped hours.
// Ordered: the first present key wins.
var (
	hourKeys   = []string{"hour", "Hour", "HOUR", "H", "h"}
	minuteKeys = []string{"minute", "Minute", "MINUTE", "M", "m"}
)

// NormalizeHour converts a heterogeneous opening-hour value into a canonical
// "HH:mm" string. Accepted shapes: "HH:mm[:ss]" strings (loosely padded values
// like "9:5" included), {hour, minute} objects with any key casing, and
// HourParts. Every other shape, nil included, yields ok == false.
func NormalizeHour(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return normalizeHourString(value)
	case HourParts:
		return formatHour(value.Hour, value.Minute)
	case map[string]any:
		h, okH := numberByKeys(value, hourKeys)
		m, okM := numberByKeys(value, minuteKeys)
		if !okH || !okM {
			return "", false
		}
		return formatHour(h, m)
	default:
		return "", false
	}
}

func normalizeHourString(s string) (string, bool) {
	if len(s) > 5 {
		s = s[:5]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", false
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		return "", false
	}
	return formatHour(h, m)
}

func formatHour(h, m int) (string, bool) {
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// numberByKeys extracts an integral numeric field from a decoded JSON object,
// trying each key in order.
func numberByKeys(m map[string]any, keys []string) (int, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
				return 0, false
			}
			return int(n), true
		case int:
			return n, true
		case int64:
			return int(n), true
		default:
			return 0, false
		}
	}
	return 0, false
}

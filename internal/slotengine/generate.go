package slotengine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Engine defaults.
const (
	// DefaultStepMinutes is the slot step used when the caller supplies none.
	DefaultStepMinutes = 15

	// DefaultOpen and DefaultClose form the canonical fallback block for
	// restaurant-like establishments with no usable schedule row.
	DefaultOpen  = "09:00"
	DefaultClose = "23:00"
)

// Block is a single [Open, Close) generation range within one day.
type Block struct {
	Open  string
	Close string
}

func minutesOfDay(hm string) int {
	parts := strings.SplitN(hm, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

func formatMinutes(total int) string {
	total %= 24 * 60
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// GenerateRange produces every "HH:mm" value t with open <= t < close,
// advancing by stepMinutes. close <= open yields an empty list: the engine
// never infers cross-midnight ranges. A non-positive step falls back to
// DefaultStepMinutes.
func GenerateRange(open, close string, stepMinutes int) []string {
	if open == "" || close == "" {
		return nil
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}

	start := minutesOfDay(open)
	end := minutesOfDay(close)

	var out []string
	for cur := start; cur < end; cur += stepMinutes {
		out = append(out, formatMinutes(cur))
	}
	return out
}

// IsContinuous reports whether the row reuses the morning/evening fields as a
// single span: open boundary only in the morning pair, close boundary only in
// the evening pair ("9:00-23:00 no break" rows).
func (h *DayHours) IsContinuous() bool {
	return h.MorningOpen != "" && h.EveningClose != "" &&
		h.MorningClose == "" && h.EveningOpen == ""
}

// IsSplitShift reports whether the row describes a two-block day with at least
// one complete morning or evening pair.
func (h *DayHours) IsSplitShift() bool {
	if h.IsContinuous() {
		return false
	}
	morning := h.MorningOpen != "" && h.MorningClose != ""
	evening := h.EveningOpen != "" && h.EveningClose != ""
	return morning || evening
}

// AssembleBlocks turns canonical day hours into generation blocks.
//
// Policy, evaluated in order:
//  1. continuous span reusing the morning/evening fields;
//  2. independent morning and/or evening pairs;
//  3. any single open + close value as a fallback block;
//  4. the canonical default block for establishments that use default hours,
//     otherwise no blocks at all.
//
// hours == nil means no schedule row matched the date.
func AssembleBlocks(hours *DayHours, useDefaultHours bool) []Block {
	if hours == nil {
		if useDefaultHours {
			return []Block{{Open: DefaultOpen, Close: DefaultClose}}
		}
		return nil
	}

	if hours.IsContinuous() {
		return []Block{{Open: hours.MorningOpen, Close: hours.EveningClose}}
	}

	var blocks []Block
	if hours.MorningOpen != "" && hours.MorningClose != "" {
		blocks = append(blocks, Block{Open: hours.MorningOpen, Close: hours.MorningClose})
	}
	if hours.EveningOpen != "" && hours.EveningClose != "" {
		blocks = append(blocks, Block{Open: hours.EveningOpen, Close: hours.EveningClose})
	}
	if len(blocks) > 0 {
		return blocks
	}

	// Неполные пары: берем любую оставшуюся границу открытия и закрытия
	open := hours.MorningOpen
	if open == "" {
		open = hours.EveningOpen
	}
	close := hours.EveningClose
	if close == "" {
		close = hours.MorningClose
	}
	if open != "" && close != "" {
		return []Block{{Open: open, Close: close}}
	}

	if useDefaultHours {
		return []Block{{Open: DefaultOpen, Close: DefaultClose}}
	}
	return nil
}

// GenerateCandidates concatenates every block's generated range, removes
// duplicates and sorts lexicographically (chronological for HH:mm values).
func GenerateCandidates(blocks []Block, stepMinutes int) []string {
	var raw []string
	for _, b := range blocks {
		raw = append(raw, GenerateRange(b.Open, b.Close, stepMinutes)...)
	}
	return dedupeSort(raw)
}

func dedupeSort(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

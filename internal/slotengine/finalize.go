package slotengine

import (
	"fmt"
	"time"
)

// Source identifies which input produced the base candidate list.
type Source int

const (
	// SourceHours slots derived from opening hours.
	SourceHours Source = iota
	// SourceServer authoritative server-computed availability.
	SourceServer
	// SourceLegacy the legacy per-date reservation table.
	SourceLegacy
)

// ContinuityMode controls whether a previously selected time survives
// recomputation. Both behaviors exist in the product: the restaurant flow
// always trusts the freshly computed list, the prestation flow preserves the
// time of the reservation being edited.
type ContinuityMode int

const (
	// ContinuityTrustSource never re-inserts the draft's selected time.
	ContinuityTrustSource ContinuityMode = iota
	// ContinuityPreserveSelection re-inserts a non-empty selected time that
	// the freshly computed list would otherwise drop.
	ContinuityPreserveSelection
)

// SegmentMode controls how the final list is partitioned for display.
type SegmentMode int

const (
	// SegmentByBlocks splits a split-shift day into Morning/Afternoon along
	// the opening-hours block boundaries; any other day is one unlabeled
	// segment.
	SegmentByBlocks SegmentMode = iota
	// SegmentMidiSoir splits on the fixed 18:00 boundary: Midi before it,
	// Soir from it on.
	SegmentMidiSoir
)

// Segment labels.
const (
	LabelMorning   = "Morning"
	LabelAfternoon = "Afternoon"
	LabelMidi      = "Midi"
	LabelSoir      = "Soir"
)

const midiSoirBoundary = "18:00"

// LegacyEntry is one record of the legacy per-date slot table.
// A nil ReservedBy means the slot is bookable.
type LegacyEntry struct {
	Time       string
	ReservedBy *string
}

// Input carries everything Finalize needs. The clock is injected, never read
// from the system.
type Input struct {
	DateISO string
	Now     time.Time

	// Hours is the schedule row matched for the date, nil when none matched.
	Hours *DayHours
	// UseDefaultHours enables the canonical fallback block (restaurant-like types).
	UseDefaultHours bool
	StepMinutes     int

	// ServerSlots is the authoritative availability result; empty means absent.
	ServerSlots []string
	// LegacyTable maps ISO dates to their legacy slot records.
	LegacyTable map[string][]LegacyEntry

	// SelectedTime is the draft's currently chosen time, empty when none.
	SelectedTime string
	Continuity   ContinuityMode
	Segmentation SegmentMode
}

// Slot is one offered start time. Selectable is false only for server-sourced
// lists when the time is not present in the authoritative result.
type Slot struct {
	Time       string
	Selectable bool
}

// Segment is a named display group of the final list.
type Segment struct {
	Label string
	Slots []string
}

// Result is the finalized availability for one date.
type Result struct {
	Source   Source
	Slots    []Slot
	Segments []Segment
}

// Finalize applies source precedence, availability filtering, past-time
// filtering, the continuity rule and segmentation. See Input for the knobs.
func Finalize(in Input) (Result, error) {
	if _, err := time.Parse(DateFormat, in.DateISO); err != nil {
		return Result{}, fmt.Errorf("slotengine: invalid date %q: %w", in.DateISO, err)
	}
	if in.Now.IsZero() {
		return Result{}, fmt.Errorf("slotengine: zero clock")
	}

	blocks := AssembleBlocks(in.Hours, in.UseDefaultHours)
	hourSlots := GenerateCandidates(blocks, in.StepMinutes)

	// Приоритет источников: сервер → часы работы → legacy-таблица
	source := SourceHours
	var base []string
	server := normalizeTimes(in.ServerSlots)
	switch {
	case len(server) > 0:
		source = SourceServer
		base = server
	case len(hourSlots) > 0:
		base = hourSlots
	default:
		source = SourceLegacy
		base = legacyFree(in.LegacyTable, in.DateISO)
	}

	// Прошедшее время отсекается только для сегодняшней даты
	if in.DateISO == in.Now.Format(DateFormat) {
		nowHM := in.Now.Format("15:04")
		filtered := base[:0:0]
		for _, t := range base {
			if t > nowHM {
				filtered = append(filtered, t)
			}
		}
		base = filtered
	}

	if in.Continuity == ContinuityPreserveSelection {
		if sel, ok := NormalizeHour(in.SelectedTime); ok && !contains(base, sel) {
			base = append(base, sel)
		}
	}

	base = dedupeSort(base)

	serverSet := make(map[string]struct{}, len(server))
	for _, t := range server {
		serverSet[t] = struct{}{}
	}

	slots := make([]Slot, len(base))
	for i, t := range base {
		selectable := true
		if source == SourceServer {
			_, selectable = serverSet[t]
		}
		slots[i] = Slot{Time: t, Selectable: selectable}
	}

	return Result{
		Source:   source,
		Slots:    slots,
		Segments: segment(base, in, source),
	}, nil
}

// HasAvailability is the derived calendar query: does the date yield at least
// one slot. The continuity rule is ignored since there is no draft.
func HasAvailability(in Input) (bool, error) {
	in.SelectedTime = ""
	in.Continuity = ContinuityTrustSource
	res, err := Finalize(in)
	if err != nil {
		return false, err
	}
	return len(res.Slots) > 0, nil
}

func segment(times []string, in Input, source Source) []Segment {
	if len(times) == 0 {
		return nil
	}

	switch in.Segmentation {
	case SegmentMidiSoir:
		var midi, soir []string
		for _, t := range times {
			if t < midiSoirBoundary {
				midi = append(midi, t)
			} else {
				soir = append(soir, t)
			}
		}
		return nonEmpty(
			Segment{Label: LabelMidi, Slots: midi},
			Segment{Label: LabelSoir, Slots: soir},
		)
	default:
		// Две секции только когда кандидаты построены из двухблочного расписания
		if source == SourceHours && in.Hours != nil && in.Hours.IsSplitShift() {
			var morning, afternoon []string
			for _, t := range times {
				if in.Hours.MorningOpen != "" && in.Hours.MorningClose != "" &&
					t >= in.Hours.MorningOpen && t < in.Hours.MorningClose {
					morning = append(morning, t)
				} else {
					afternoon = append(afternoon, t)
				}
			}
			return nonEmpty(
				Segment{Label: LabelMorning, Slots: morning},
				Segment{Label: LabelAfternoon, Slots: afternoon},
			)
		}
		return []Segment{{Label: "", Slots: times}}
	}
}

func nonEmpty(segments ...Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if len(s.Slots) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func legacyFree(table map[string][]LegacyEntry, dateISO string) []string {
	var out []string
	for _, entry := range table[dateISO] {
		if entry.ReservedBy != nil {
			continue
		}
		if t, ok := NormalizeHour(entry.Time); ok {
			out = append(out, t)
		}
	}
	return dedupeSort(out)
}

func normalizeTimes(values []string) []string {
	var out []string
	for _, v := range values {
		if t, ok := NormalizeHour(v); ok {
			out = append(out, t)
		}
	}
	return dedupeSort(out)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

package slotengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resago/booking-service/pkg/ptr"
)

// clockAt собирает инжектируемое "сейчас" для тестов
func clockAt(dateISO, hm string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", dateISO+" "+hm)
	if err != nil {
		panic(err)
	}
	return ts
}

func times(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func TestFinalize_SourcePrecedence(t *testing.T) {
	hours := &DayHours{MorningOpen: "09:00", MorningClose: "10:00"}
	legacy := map[string][]LegacyEntry{
		"2025-06-10": {
			{Time: "12:00", ReservedBy: nil},
			{Time: "12:15", ReservedBy: ptr.Ptr("u1")},
		},
	}

	t.Run("server result wins over everything", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:     "2025-06-10",
			Now:         clockAt("2025-06-01", "10:00"),
			Hours:       hours,
			ServerSlots: []string{"10:00", "10:15"},
			LegacyTable: legacy,
		})
		require.NoError(t, err)
		assert.Equal(t, SourceServer, res.Source)
		assert.Equal(t, []string{"10:00", "10:15"}, times(res.Slots))
	})

	t.Run("hours win over legacy", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:     "2025-06-10",
			Now:         clockAt("2025-06-01", "10:00"),
			Hours:       hours,
			LegacyTable: legacy,
		})
		require.NoError(t, err)
		assert.Equal(t, SourceHours, res.Source)
		assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, times(res.Slots))
	})

	t.Run("legacy keeps only unreserved entries", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:     "2025-06-10",
			Now:         clockAt("2025-06-01", "10:00"),
			LegacyTable: legacy,
		})
		require.NoError(t, err)
		assert.Equal(t, SourceLegacy, res.Source)
		assert.Equal(t, []string{"12:00"}, times(res.Slots))
	})

	t.Run("empty server result falls through", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:     "2025-06-10",
			Now:         clockAt("2025-06-01", "10:00"),
			Hours:       hours,
			ServerSlots: []string{},
		})
		require.NoError(t, err)
		assert.Equal(t, SourceHours, res.Source)
	})
}

func TestFinalize_PastTimeFiltering(t *testing.T) {
	hours := &DayHours{MorningOpen: "14:00", MorningClose: "15:00"}

	t.Run("today drops slots not strictly after now", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-10", "14:32"),
			Hours:   hours,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"14:45"}, times(res.Slots))
	})

	t.Run("slot equal to now is dropped", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-10", "18:01"),
			Hours:   &DayHours{MorningOpen: "18:00", MorningClose: "18:30"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"18:15"}, times(res.Slots))
	})

	t.Run("other dates keep all slots", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-11",
			Now:     clockAt("2025-06-10", "23:59"),
			Hours:   hours,
		})
		require.NoError(t, err)
		assert.Len(t, res.Slots, 4)
	})
}

func TestFinalize_ContinuityRule(t *testing.T) {
	hours := &DayHours{MorningOpen: "09:00", MorningClose: "10:00"}

	t.Run("preserve mode re-inserts missing selection", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			Hours:        hours,
			SelectedTime: "14:00",
			Continuity:   ContinuityPreserveSelection,
		})
		require.NoError(t, err)
		assert.Contains(t, times(res.Slots), "14:00")
	})

	t.Run("trust mode never re-inserts", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			Hours:        hours,
			SelectedTime: "14:00",
			Continuity:   ContinuityTrustSource,
		})
		require.NoError(t, err)
		assert.NotContains(t, times(res.Slots), "14:00")
	})

	t.Run("re-inserted server slot is not selectable", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			ServerSlots:  []string{"10:00", "10:15"},
			SelectedTime: "14:00",
			Continuity:   ContinuityPreserveSelection,
		})
		require.NoError(t, err)
		require.Equal(t, []string{"10:00", "10:15", "14:00"}, times(res.Slots))
		assert.True(t, res.Slots[0].Selectable)
		assert.True(t, res.Slots[1].Selectable)
		assert.False(t, res.Slots[2].Selectable)
	})

	t.Run("selection already present is not duplicated", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			Hours:        hours,
			SelectedTime: "09:15",
			Continuity:   ContinuityPreserveSelection,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, times(res.Slots))
	})
}

func TestFinalize_Segmentation(t *testing.T) {
	splitShift := &DayHours{MorningOpen: "09:00", MorningClose: "12:00", EveningOpen: "14:00", EveningClose: "18:00"}

	t.Run("split shift day yields two named segments", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-01", "10:00"),
			Hours:   splitShift,
		})
		require.NoError(t, err)
		require.Len(t, res.Segments, 2)
		assert.Equal(t, LabelMorning, res.Segments[0].Label)
		assert.Len(t, res.Segments[0].Slots, 12)
		assert.Equal(t, "09:00", res.Segments[0].Slots[0])
		assert.Equal(t, "11:45", res.Segments[0].Slots[11])
		assert.Equal(t, LabelAfternoon, res.Segments[1].Label)
		assert.Len(t, res.Segments[1].Slots, 16)
		assert.Equal(t, "14:00", res.Segments[1].Slots[0])
		assert.Equal(t, "17:45", res.Segments[1].Slots[15])
	})

	t.Run("continuous day yields one unlabeled segment", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-01", "10:00"),
			Hours:   &DayHours{MorningOpen: "09:00", EveningClose: "23:00"},
		})
		require.NoError(t, err)
		require.Len(t, res.Segments, 1)
		assert.Equal(t, "", res.Segments[0].Label)
		assert.Len(t, res.Segments[0].Slots, 56)
	})

	t.Run("server source yields one unlabeled segment in blocks mode", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:     "2025-06-10",
			Now:         clockAt("2025-06-01", "10:00"),
			Hours:       splitShift,
			ServerSlots: []string{"10:00", "15:00"},
		})
		require.NoError(t, err)
		require.Len(t, res.Segments, 1)
		assert.Equal(t, "", res.Segments[0].Label)
	})

	t.Run("midi soir mode splits on fixed boundary", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			Hours:        &DayHours{MorningOpen: "17:00", EveningClose: "19:00"},
			Segmentation: SegmentMidiSoir,
		})
		require.NoError(t, err)
		require.Len(t, res.Segments, 2)
		assert.Equal(t, LabelMidi, res.Segments[0].Label)
		assert.Equal(t, []string{"17:00", "17:15", "17:30", "17:45"}, res.Segments[0].Slots)
		assert.Equal(t, LabelSoir, res.Segments[1].Label)
		assert.Equal(t, []string{"18:00", "18:15", "18:30", "18:45"}, res.Segments[1].Slots)
	})

	t.Run("empty midi segment is omitted", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			Hours:        &DayHours{MorningOpen: "19:00", MorningClose: "20:00"},
			Segmentation: SegmentMidiSoir,
		})
		require.NoError(t, err)
		require.Len(t, res.Segments, 1)
		assert.Equal(t, LabelSoir, res.Segments[0].Label)
	})
}

func TestFinalize_DefaultHoursFallback(t *testing.T) {
	t.Run("restaurant-like type falls back to default block", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO:         "2025-06-10",
			Now:             clockAt("2025-06-01", "10:00"),
			UseDefaultHours: true,
		})
		require.NoError(t, err)
		require.Len(t, res.Slots, 56)
		assert.Equal(t, "09:00", res.Slots[0].Time)
		assert.Equal(t, "22:45", res.Slots[55].Time)
	})

	t.Run("other types yield zero slots and fall to legacy", func(t *testing.T) {
		res, err := Finalize(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-01", "10:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, SourceLegacy, res.Source)
		assert.Empty(t, res.Slots)
	})
}

func TestFinalize_Preconditions(t *testing.T) {
	t.Run("malformed date fails loudly", func(t *testing.T) {
		_, err := Finalize(Input{DateISO: "10/06/2025", Now: clockAt("2025-06-01", "10:00")})
		require.Error(t, err)
	})

	t.Run("zero clock fails loudly", func(t *testing.T) {
		_, err := Finalize(Input{DateISO: "2025-06-10"})
		require.Error(t, err)
	})
}

func TestHasAvailability(t *testing.T) {
	t.Run("true when any slot survives", func(t *testing.T) {
		ok, err := HasAvailability(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-01", "10:00"),
			Hours:   &DayHours{MorningOpen: "09:00", MorningClose: "09:30"},
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("false when the day is fully booked", func(t *testing.T) {
		ok, err := HasAvailability(Input{
			DateISO: "2025-06-10",
			Now:     clockAt("2025-06-01", "10:00"),
			LegacyTable: map[string][]LegacyEntry{
				"2025-06-10": {{Time: "12:00", ReservedBy: ptr.Ptr("u1")}},
			},
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ignores the continuity rule", func(t *testing.T) {
		ok, err := HasAvailability(Input{
			DateISO:      "2025-06-10",
			Now:          clockAt("2025-06-01", "10:00"),
			SelectedTime: "14:00",
			Continuity:   ContinuityPreserveSelection,
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

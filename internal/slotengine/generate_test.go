package slotengine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRange(t *testing.T) {
	t.Run("fifteen minute step", func(t *testing.T) {
		got := GenerateRange("09:00", "10:00", 15)
		assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, got)
	})

	t.Run("close excluded", func(t *testing.T) {
		got := GenerateRange("09:00", "09:30", 15)
		assert.Equal(t, []string{"09:00", "09:15"}, got)
	})

	t.Run("close before open yields empty", func(t *testing.T) {
		assert.Empty(t, GenerateRange("22:00", "09:00", 15))
		assert.Empty(t, GenerateRange("09:00", "09:00", 15))
	})

	t.Run("missing boundary yields empty", func(t *testing.T) {
		assert.Empty(t, GenerateRange("", "10:00", 15))
		assert.Empty(t, GenerateRange("09:00", "", 15))
	})

	t.Run("zero step falls back to default", func(t *testing.T) {
		assert.Equal(t, GenerateRange("09:00", "10:00", DefaultStepMinutes), GenerateRange("09:00", "10:00", 0))
	})

	t.Run("idempotent and order stable", func(t *testing.T) {
		first := GenerateRange("09:00", "23:00", 15)
		second := GenerateRange("09:00", "23:00", 15)
		assert.Equal(t, first, second)
	})

	t.Run("monotonic step property", func(t *testing.T) {
		step := 20
		slots := GenerateRange("08:00", "19:00", step)
		for i := 1; i < len(slots); i++ {
			prev := minutesOfDay(slots[i-1])
			cur := minutesOfDay(slots[i])
			require.Equal(t, step, cur-prev, "between %s and %s", slots[i-1], slots[i])
		}
	})

	t.Run("no overflow past midnight", func(t *testing.T) {
		slots := GenerateRange("23:00", "23:59", 15)
		for _, s := range slots {
			var h, m int
			_, err := fmt.Sscanf(s, "%d:%d", &h, &m)
			require.NoError(t, err)
			assert.True(t, h >= 0 && h <= 23, s)
			assert.True(t, m >= 0 && m <= 59, s)
		}
	})
}

func TestAssembleBlocks(t *testing.T) {
	tests := []struct {
		name       string
		hours      *DayHours
		useDefault bool
		want       []Block
	}{
		{
			name:  "split shift day",
			hours: &DayHours{MorningOpen: "09:00", MorningClose: "12:00", EveningOpen: "14:00", EveningClose: "18:00"},
			want:  []Block{{Open: "09:00", Close: "12:00"}, {Open: "14:00", Close: "18:00"}},
		},
		{
			name:  "continuous span reusing both field pairs",
			hours: &DayHours{MorningOpen: "09:00", EveningClose: "23:00"},
			want:  []Block{{Open: "09:00", Close: "23:00"}},
		},
		{
			name:  "morning pair only",
			hours: &DayHours{MorningOpen: "09:00", MorningClose: "12:00"},
			want:  []Block{{Open: "09:00", Close: "12:00"}},
		},
		{
			name:  "incomplete pairs fall back to any open plus close",
			hours: &DayHours{EveningOpen: "14:00", MorningClose: "12:00"},
			want:  []Block{{Open: "14:00", Close: "12:00"}},
		},
		{
			name:       "no row, default hours establishment",
			hours:      nil,
			useDefault: true,
			want:       []Block{{Open: "09:00", Close: "23:00"}},
		},
		{
			name:  "no row, no default hours",
			hours: nil,
			want:  nil,
		},
		{
			name:       "empty row, default hours establishment",
			hours:      &DayHours{Day: "MONDAY"},
			useDefault: true,
			want:       []Block{{Open: "09:00", Close: "23:00"}},
		},
		{
			name:  "empty row, no default hours",
			hours: &DayHours{Day: "MONDAY"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssembleBlocks(tt.hours, tt.useDefault))
		})
	}
}

func TestGenerateCandidates(t *testing.T) {
	t.Run("concatenates blocks sorted and deduplicated", func(t *testing.T) {
		blocks := []Block{
			{Open: "14:00", Close: "14:30"},
			{Open: "09:00", Close: "09:30"},
			{Open: "14:15", Close: "14:45"}, // пересекается с первым блоком
		}
		got := GenerateCandidates(blocks, 15)
		assert.Equal(t, []string{"09:00", "09:15", "14:00", "14:15", "14:30"}, got)
	})

	t.Run("split shift counts", func(t *testing.T) {
		hours := &DayHours{MorningOpen: "09:00", MorningClose: "12:00", EveningOpen: "14:00", EveningClose: "18:00"}
		got := GenerateCandidates(AssembleBlocks(hours, false), 15)
		// 12 утренних (09:00..11:45) + 16 вечерних (14:00..17:45)
		require.Len(t, got, 28)
		assert.Equal(t, "09:00", got[0])
		assert.Equal(t, "11:45", got[11])
		assert.Equal(t, "14:00", got[12])
		assert.Equal(t, "17:45", got[27])
	})

	t.Run("continuous block counts", func(t *testing.T) {
		hours := &DayHours{MorningOpen: "09:00", EveningClose: "23:00"}
		got := GenerateCandidates(AssembleBlocks(hours, false), 15)
		require.Len(t, got, 56)
		assert.Equal(t, "09:00", got[0])
		assert.Equal(t, "22:45", got[55])
	})
}

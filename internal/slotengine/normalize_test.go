package slotengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHour(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   string
		wantOK bool
	}{
		{name: "canonical string", input: "09:30", want: "09:30", wantOK: true},
		{name: "string with seconds", input: "09:30:45", want: "09:30", wantOK: true},
		{name: "unpadded string", input: "9:5", want: "09:05", wantOK: true},
		{name: "late evening", input: "23:00", want: "23:00", wantOK: true},
		{name: "garbage string", input: "garbage", wantOK: false},
		{name: "hours out of range", input: "25:00", wantOK: false},
		{name: "minutes out of range", input: "10:75", wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "number", input: 930, wantOK: false},

		{name: "object lowercase keys", input: map[string]any{"hour": float64(23), "minute": float64(0)}, want: "23:00", wantOK: true},
		{name: "object short keys", input: map[string]any{"H": float64(8), "M": float64(15)}, want: "08:15", wantOK: true},
		{name: "object mixed casing", input: map[string]any{"Hour": float64(7), "m": float64(45)}, want: "07:45", wantOK: true},
		{name: "object missing minute", input: map[string]any{"hour": float64(9)}, wantOK: false},
		{name: "object fractional hour", input: map[string]any{"hour": 9.5, "minute": float64(0)}, wantOK: false},
		{name: "object string values", input: map[string]any{"hour": "9", "minute": "30"}, wantOK: false},
		{name: "typed parts", input: HourParts{Hour: 14, Minute: 5}, want: "14:05", wantOK: true},
		{name: "typed parts out of range", input: HourParts{Hour: 24, Minute: 0}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeHour(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing zero padding", input: "9:30", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "12:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		base    TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", base: "10:00", add: 15, want: "10:15"},
		{name: "across hour", base: "10:50", add: 20, want: "11:10"},
		{name: "to last minute", base: "23:30", add: 29, want: "23:59"},
		{name: "crosses midnight", base: "23:50", add: 15, wantErr: true},
		{name: "exactly midnight", base: "23:45", add: 15, wantErr: true},
		{name: "negative within day", base: "10:00", add: -30, want: "09:30"},
		{name: "negative below zero", base: "00:10", add: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.base.AddMinutes(tt.add)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.True(t, TimeString("17:45").IsBefore("18:00"))
	assert.False(t, TimeString("18:00").IsBefore("18:00"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("18:00").IsAfter("18:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 6, 10, 14, 5, 33, 0, time.UTC)
	assert.Equal(t, TimeString("14:05"), NewTimeString(moment))
}

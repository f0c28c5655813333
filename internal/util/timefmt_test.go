package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "morning", in: time.Date(2024, 6, 1, 9, 5, 0, 0, time.UTC), want: "09:05"},
		{name: "midnight", in: time.Date(2024, 6, 1, 0, 0, 59, 0, time.UTC), want: "00:00"},
		{name: "evening", in: time.Date(2024, 6, 1, 23, 45, 0, 0, time.UTC), want: "23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

func TestSplitMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		minutes   int
		wantHours int
		wantMins  int
	}{
		{name: "under an hour", minutes: 45, wantHours: 0, wantMins: 45},
		{name: "exactly an hour", minutes: 60, wantHours: 1, wantMins: 0},
		{name: "over an hour", minutes: 75, wantHours: 1, wantMins: 15},
		{name: "negative clamps", minutes: -3, wantHours: 0, wantMins: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hours, mins := SplitMinutes(tt.minutes)
			assert.Equal(t, tt.wantHours, hours)
			assert.Equal(t, tt.wantMins, mins)
		})
	}
}

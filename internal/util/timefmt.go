// Package util holds small shared helpers with no domain knowledge.
package util

import "time"

// FormatClock renders a wall-clock time as zero-padded HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// SplitMinutes breaks a minute count into whole hours and leftover minutes.
func SplitMinutes(minutes int) (hours, mins int) {
	if minutes < 0 {
		minutes = 0
	}

	return minutes / 60, minutes % 60
}

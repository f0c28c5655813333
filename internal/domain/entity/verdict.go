package entity

import "time"

// VerdictCategory classifies the traveller's situation against the next
// scheduled departure.
type VerdictCategory string

const (
	// VerdictOnTime means the traveller reaches the departure with at
	// least five minutes to spare.
	VerdictOnTime VerdictCategory = "on_time"

	// VerdictHurry means the traveller makes it, but with under five
	// minutes of margin.
	VerdictHurry VerdictCategory = "hurry"

	// VerdictMissedShortWait means the next boat leaves within 15 minutes
	// of the projected arrival.
	VerdictMissedShortWait VerdictCategory = "missed_short_wait"

	// VerdictMissedMediumWait means a 16-20 minute wait at the quay.
	VerdictMissedMediumWait VerdictCategory = "missed_medium_wait"

	// VerdictMissedLongWait means a wait above 20 minutes; a suggested
	// start time may accompany it.
	VerdictMissedLongWait VerdictCategory = "missed_long_wait"

	// VerdictNoMoreToday means no departure remains after the projected
	// arrival.
	VerdictNoMoreToday VerdictCategory = "no_more_today"
)

// Verdict is the decision engine output. It is immutable and produced per
// query; all durations are whole minutes.
type Verdict struct {
	Category VerdictCategory `json:"category"`

	DistanceMeters int `json:"distance"`
	DrivingTime    int `json:"drivingTime"`

	// Margin is set for OnTime and Hurry.
	Margin int `json:"margin,omitempty"`

	// MissedBy and NextWait are set for the missed categories.
	MissedBy int `json:"missedBy,omitempty"`
	NextWait int `json:"nextWait,omitempty"`

	// ShowMissedBy hints whether a renderer should surface MissedBy;
	// short waits suppress it.
	ShowMissedBy bool `json:"showMissedBy"`

	// SuggestedStart is the recommended departure clock time for long
	// waits; nil when leaving immediately would already be too late to
	// improve anything.
	SuggestedStart *time.Time `json:"suggestedStart,omitempty"`
}

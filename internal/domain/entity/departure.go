package entity

import (
	"encoding/json"
	"sort"
	"time"
)

// Departure is a scheduled (aimed, not real-time) ferry departure.
type Departure struct {
	Aimed time.Time `json:"aimed"`
}

// departureJSON accepts both the canonical "aimed" field and the
// "aimedDepartureTime" alias used by SIRI-style feeds. When both are
// present, "aimed" wins.
type departureJSON struct {
	Aimed              *time.Time `json:"aimed"`
	AimedDepartureTime *time.Time `json:"aimedDepartureTime"`
}

// UnmarshalJSON decodes a departure record. Records with neither timestamp
// field decode to a zero Aimed time and are dropped by Schedule filtering.
func (d *Departure) UnmarshalJSON(data []byte) error {
	var raw departureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Aimed != nil:
		d.Aimed = *raw.Aimed
	case raw.AimedDepartureTime != nil:
		d.Aimed = *raw.AimedDepartureTime
	default:
		d.Aimed = time.Time{}
	}

	return nil
}

// Schedule is an unordered finite sequence of departures.
type Schedule []Departure

// After returns the departures strictly after t, sorted ascending by aimed
// time. Records without a timestamp are dropped.
func (s Schedule) After(t time.Time) Schedule {
	out := make(Schedule, 0, len(s))
	for _, d := range s {
		if d.Aimed.IsZero() {
			continue
		}
		if d.Aimed.After(t) {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Aimed.Before(out[j].Aimed)
	})

	return out
}

// Next returns the earliest departure strictly after t, if any.
func (s Schedule) Next(t time.Time) (Departure, bool) {
	upcoming := s.After(t)
	if len(upcoming) == 0 {
		return Departure{}, false
	}

	return upcoming[0], true
}

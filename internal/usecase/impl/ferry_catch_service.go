package impl

import (
	"math"
	"time"

	"fergetid/internal/domain/entity"
	"fergetid/internal/usecase"
)

const (
	// hurryThresholdMinutes separates a comfortable margin from a tight one.
	hurryThresholdMinutes = 5

	// shortWaitMinutes and mediumWaitMinutes bound the wait categories at
	// the quay after a missed departure.
	shortWaitMinutes  = 15
	mediumWaitMinutes = 20

	// safetyMargin is the fixed buffer used when suggesting a start time.
	safetyMargin = 5 * time.Minute
)

// ferryCatchService classifies the traveller's situation against the
// departure schedule. Pure; all inputs map to some verdict.
type ferryCatchService struct{}

func NewFerryCatchService() usecase.FerryCatchUsecase {
	return &ferryCatchService{}
}

func (s *ferryCatchService) Decide(route *entity.RouteResult, timeToDeparture int, schedule entity.Schedule, now time.Time) entity.Verdict {
	verdict := entity.Verdict{
		DistanceMeters: route.DistanceMeters,
		DrivingTime:    route.DrivingTime,
	}

	if timeToDeparture > route.DrivingTime {
		verdict.Margin = timeToDeparture - route.DrivingTime
		if verdict.Margin < hurryThresholdMinutes {
			verdict.Category = entity.VerdictHurry
		} else {
			verdict.Category = entity.VerdictOnTime
		}

		return verdict
	}

	// Equal driving time counts as missed, with nothing missed by.
	verdict.MissedBy = route.DrivingTime - timeToDeparture

	projectedArrival := now.Add(time.Duration(route.DrivingTime) * time.Minute)

	next, ok := schedule.Next(projectedArrival)
	if !ok {
		verdict.Category = entity.VerdictNoMoreToday
		verdict.ShowMissedBy = true

		return verdict
	}

	// Negative waits cannot occur since the filter is strictly after the
	// projected arrival; the clamp guards rounding only.
	nextWait := int(math.Round(next.Aimed.Sub(projectedArrival).Minutes()))
	if nextWait < 0 {
		nextWait = 0
	}
	verdict.NextWait = nextWait

	switch {
	case nextWait <= shortWaitMinutes:
		verdict.Category = entity.VerdictMissedShortWait
	case nextWait <= mediumWaitMinutes:
		verdict.Category = entity.VerdictMissedMediumWait
		verdict.ShowMissedBy = true
	default:
		verdict.Category = entity.VerdictMissedLongWait
		verdict.ShowMissedBy = true
		verdict.SuggestedStart = suggestedStart(route.DrivingTime, next, now)
	}

	return verdict
}

// suggestedStart computes when to leave to reach the given departure with
// the safety margin to spare. Suppressed when that moment has already
// passed.
func suggestedStart(drivingTime int, next entity.Departure, now time.Time) *time.Time {
	targetArrival := next.Aimed.Add(-safetyMargin)
	start := targetArrival.Add(-time.Duration(drivingTime) * time.Minute)

	if !start.After(now) {
		return nil
	}

	return &start
}

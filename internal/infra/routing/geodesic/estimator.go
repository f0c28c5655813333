// Package geodesic provides the closed-form routing floor: a great-circle
// distance with a constant-speed driving-time estimate. It terminates the
// resolver's provider chain and never fails.
package geodesic

import (
	"context"
	"math"

	"fergetid/internal/domain/entity"
)

const (
	earthRadiusMeters = 6371000.0

	// averageSpeedKmh is the assumed driving speed for the estimate.
	averageSpeedKmh = 50.0
)

// Estimator implements the route provider capability set.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) Name() string {
	return "haversine"
}

// IsConfigured always holds; the estimator needs no credentials.
func (e *Estimator) IsConfigured() bool {
	return true
}

// Compute never returns an error.
func (e *Estimator) Compute(_ context.Context, req entity.RouteRequest) (*entity.RouteResult, error) {
	result := Estimate(req.Start, req.End)

	return &result, nil
}

// Estimate returns the haversine route result between two coordinates.
func Estimate(start, end entity.Coordinate) entity.RouteResult {
	distance := Distance(start, end)
	minutes := distance / 1000 / averageSpeedKmh * 60

	drivingTime := int(math.Round(minutes))
	if drivingTime < 1 {
		drivingTime = 1
	}

	return entity.RouteResult{
		DrivingTime:    drivingTime,
		DistanceMeters: int(math.Round(distance)),
		Source:         entity.ProvenanceHaversine,
		HasFerry:       false,
	}
}

// Distance returns the great-circle distance between two coordinates in
// meters, using the standard haversine formula.
func Distance(start, end entity.Coordinate) float64 {
	lat1 := start.Lat * math.Pi / 180
	lng1 := start.Lng * math.Pi / 180
	lat2 := end.Lat * math.Pi / 180
	lng2 := end.Lng * math.Pi / 180

	deltaLat := lat2 - lat1
	deltaLng := lng2 - lng1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

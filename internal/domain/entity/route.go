package entity

// Provenance identifies which subsystem produced a route result.
type Provenance string

const (
	ProvenanceHere      Provenance = "here_routing_v8"
	ProvenanceGoogle    Provenance = "google_routes_v2"
	ProvenanceHaversine Provenance = "haversine"
)

// RouteRequest describes a single driving-time query.
type RouteRequest struct {
	Start Coordinate `json:"start"`
	End   Coordinate `json:"end"`

	// RoadOnly requests ferry avoidance from providers and triggers
	// ferry-usage detection on the returned path.
	RoadOnly bool `json:"roadOnly"`
}

// RouteResult is the resolver output. DrivingTime is whole minutes and is
// always at least 1; DistanceMeters is never negative.
type RouteResult struct {
	DrivingTime    int        `json:"time"`
	DistanceMeters int        `json:"distance"`
	Source         Provenance `json:"source"`
	HasFerry       bool       `json:"hasFerry"`
}

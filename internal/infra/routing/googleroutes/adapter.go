// Package googleroutes implements the route provider backed by the Google
// Routes API v2 computeRoutes endpoint.
package googleroutes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint = "https://routes.googleapis.com/directions/v2:computeRoutes"

	// requestTimeout caps a single routing call.
	requestTimeout = 10 * time.Second

	fieldMask = "routes.duration,routes.distanceMeters"
)

// Adapter translates route requests into Routes API v2 calls. Ferry
// detection is not attempted here; the API does not expose section-level
// transport modes through the summary field mask.
type Adapter struct {
	cfg        *config.GoogleConfig
	httpClient *http.Client
}

// NewAdapter creates a Google Routes provider.
func NewAdapter(cfg *config.GoogleConfig) *Adapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (a *Adapter) Name() string {
	return "google_routes_v2"
}

func (a *Adapter) IsConfigured() bool {
	return a.cfg.IsConfigured()
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type routeModifiers struct {
	AvoidTolls    bool `json:"avoidTolls"`
	AvoidHighways bool `json:"avoidHighways"`
	AvoidFerries  bool `json:"avoidFerries"`
}

type computeRoutesRequest struct {
	Origin                   waypoint       `json:"origin"`
	Destination              waypoint       `json:"destination"`
	TravelMode               string         `json:"travelMode"`
	RoutingPreference        string         `json:"routingPreference"`
	ComputeAlternativeRoutes bool           `json:"computeAlternativeRoutes"`
	RouteModifiers           routeModifiers `json:"routeModifiers"`
	LanguageCode             string         `json:"languageCode"`
	Units                    string         `json:"units"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration       flexibleDuration `json:"duration"`
		DistanceMeters int              `json:"distanceMeters"`
	} `json:"routes"`
}

// flexibleDuration accepts both encodings the API uses for durations: a
// string like "600s" and an object with a seconds field.
type flexibleDuration struct {
	Seconds float64
}

func (d *flexibleDuration) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		seconds, err := strconv.ParseFloat(strings.TrimSuffix(asString, "s"), 64)
		if err != nil {
			return errors.Wrapf(err, "parse duration %q", asString)
		}
		d.Seconds = seconds

		return nil
	}

	var asObject struct {
		Seconds float64 `json:"seconds"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return errors.Wrap(err, "parse duration object")
	}
	d.Seconds = asObject.Seconds

	return nil
}

// Compute issues the computeRoutes call and parses the primary route.
func (a *Adapter) Compute(ctx context.Context, req entity.RouteRequest) (*entity.RouteResult, error) {
	if !a.cfg.IsConfigured() {
		return nil, service.ErrMissingCredentials
	}

	body := computeRoutesRequest{
		TravelMode:               "DRIVE",
		RoutingPreference:        "TRAFFIC_AWARE_OPTIMAL",
		ComputeAlternativeRoutes: false,
		RouteModifiers: routeModifiers{
			AvoidFerries: req.RoadOnly,
		},
		LanguageCode: "no-NO",
		Units:        "METRIC",
	}
	body.Origin.Location.LatLng = latLng{Latitude: req.Start.Lat, Longitude: req.Start.Lng}
	body.Destination.Location.LatLng = latLng{Latitude: req.End.Lat, Longitude: req.End.Lng}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	endpoint := a.cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", a.cfg.GetAPIKey())
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "routing call")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &service.StatusError{Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	var parsed computeRoutesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	if len(parsed.Routes) == 0 {
		return nil, service.ErrNoRoute
	}

	route := parsed.Routes[0]
	if route.DistanceMeters == 0 {
		return nil, service.ErrZeroDistance
	}

	drivingTime := int(math.Round(route.Duration.Seconds / 60))
	if drivingTime < 1 {
		drivingTime = 1
	}

	return &entity.RouteResult{
		DrivingTime:    drivingTime,
		DistanceMeters: route.DistanceMeters,
		Source:         entity.ProvenanceGoogle,
		HasFerry:       false,
	}, nil
}

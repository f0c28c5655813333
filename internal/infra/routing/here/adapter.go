// Package here implements the route provider backed by the HERE Routing
// API v8.
package here

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint = "https://router.hereapi.com/v8/routes"

	// requestTimeout caps a single routing call.
	requestTimeout = 10 * time.Second

	transportModeFerry = "ferry"
)

// Adapter translates route requests into HERE v8 calls.
type Adapter struct {
	cfg        *config.HereConfig
	httpClient *http.Client
}

// NewAdapter creates a HERE route provider.
func NewAdapter(cfg *config.HereConfig) *Adapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (a *Adapter) Name() string {
	return "here_routing_v8"
}

func (a *Adapter) IsConfigured() bool {
	return a.cfg.IsConfigured()
}

// routingURL builds the GET URL, or empty when credentials are missing.
func (a *Adapter) routingURL(req entity.RouteRequest) string {
	if !a.cfg.IsConfigured() {
		return ""
	}

	endpoint := a.cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	params := url.Values{}
	params.Set("transportMode", "car")
	params.Set("origin", fmt.Sprintf("%f,%f", req.Start.Lat, req.Start.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", req.End.Lat, req.End.Lng))
	params.Set("return", "summary")
	if req.RoadOnly {
		params.Set("avoid[features]", "ferry")
	}
	params.Set("apikey", a.cfg.APIKey)

	return endpoint + "?" + params.Encode()
}

type hereResponse struct {
	Routes []hereRoute `json:"routes"`
}

type hereRoute struct {
	Sections []hereSection `json:"sections"`
}

type hereSection struct {
	Transport struct {
		Mode string `json:"mode"`
	} `json:"transport"`
	Summary *hereSummary `json:"summary"`
}

type hereSummary struct {
	Duration float64 `json:"duration"`
	Length   float64 `json:"length"`
}

// Compute issues the routing call and parses the primary route.
func (a *Adapter) Compute(ctx context.Context, req entity.RouteRequest) (*entity.RouteResult, error) {
	source := a.routingURL(req)
	if source == "" {
		return nil, service.ErrMissingCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "routing call")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &service.StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	var parsed hereResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	if len(parsed.Routes) == 0 {
		return nil, service.ErrNoRoute
	}

	route := parsed.Routes[0]
	if len(route.Sections) == 0 || route.Sections[0].Summary == nil {
		return nil, service.ErrMalformedResponse
	}

	// Ferry usage is reported, not treated as a failure; the caller
	// decides what to do with a route that still includes a crossing.
	hasFerry := false
	if req.RoadOnly {
		for _, section := range route.Sections {
			if section.Transport.Mode == transportModeFerry {
				hasFerry = true

				break
			}
		}
	}

	summary := route.Sections[0].Summary
	if summary.Length == 0 {
		return nil, service.ErrZeroDistance
	}

	drivingTime := int(math.Round(summary.Duration / 60))
	if drivingTime < 1 {
		drivingTime = 1
	}

	return &entity.RouteResult{
		DrivingTime:    drivingTime,
		DistanceMeters: int(math.Round(summary.Length)),
		Source:         entity.ProvenanceHere,
		HasFerry:       hasFerry,
	}, nil
}

package googleroutes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAdapter(&config.GoogleConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
	})
}

func testRequest() entity.RouteRequest {
	return entity.RouteRequest{
		Start: entity.Coordinate{Lat: 59.0, Lng: 10.0},
		End:   entity.Coordinate{Lat: 59.1, Lng: 10.1},
	}
}

func TestComputeSendsRoutesRequest(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, "routes.duration,routes.distanceMeters", r.Header.Get("X-Goog-FieldMask"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "DRIVE", body["travelMode"])
		assert.Equal(t, "TRAFFIC_AWARE_OPTIMAL", body["routingPreference"])
		assert.Equal(t, "no-NO", body["languageCode"])
		assert.Equal(t, "METRIC", body["units"])

		modifiers, ok := body["routeModifiers"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, modifiers["avoidFerries"])
		assert.Equal(t, false, modifiers["avoidTolls"])

		w.Write([]byte(`{"routes":[{"duration":"600s","distanceMeters":8000}]}`))
	})

	req := testRequest()
	req.RoadOnly = true

	result, err := adapter.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 10, result.DrivingTime)
	assert.Equal(t, 8000, result.DistanceMeters)
	assert.Equal(t, entity.ProvenanceGoogle, result.Source)
	assert.False(t, result.HasFerry)
}

func TestComputeAcceptsDurationObject(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"duration":{"seconds":930},"distanceMeters":11500}]}`))
	})

	result, err := adapter.Compute(context.Background(), testRequest())
	require.NoError(t, err)

	// 930 s rounds to 16 minutes.
	assert.Equal(t, 16, result.DrivingTime)
	assert.Equal(t, 11500, result.DistanceMeters)
}

func TestComputeEmptyRoutes(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	})

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrNoRoute)
}

func TestComputeZeroDistance(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"duration":"60s","distanceMeters":0}]}`))
	})

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrZeroDistance)
}

func TestComputeUpstreamStatus(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := adapter.Compute(context.Background(), testRequest())

	var statusErr *service.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestComputeMissingCredentials(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(&config.GoogleConfig{})
	require.False(t, adapter.IsConfigured())

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrMissingCredentials)
}

func TestFlexibleDurationString(t *testing.T) {
	t.Parallel()

	var d flexibleDuration
	require.NoError(t, json.Unmarshal([]byte(`"123.5s"`), &d))
	assert.InDelta(t, 123.5, d.Seconds, 1e-9)
}

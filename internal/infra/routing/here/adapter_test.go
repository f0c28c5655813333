package here

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAdapter(&config.HereConfig{
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

func TestComputeParsesSummary(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "car", r.URL.Query().Get("transportMode"))
		assert.Empty(t, r.URL.Query().Get("avoid[features]"))

		w.Write([]byte(`{"routes":[{"sections":[{"transport":{"mode":"car"},"summary":{"duration":900,"length":12000}}]}]}`))
	})

	result, err := adapter.Compute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 15, result.DrivingTime)
	assert.Equal(t, 12000, result.DistanceMeters)
	assert.Equal(t, entity.ProvenanceHere, result.Source)
	assert.False(t, result.HasFerry)
}

func TestComputeRequestsFerryAvoidance(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ferry", r.URL.Query().Get("avoid[features]"))

		w.Write([]byte(`{"routes":[{"sections":[
			{"transport":{"mode":"car"},"summary":{"duration":600,"length":9000}},
			{"transport":{"mode":"ferry"}}
		]}]}`))
	})

	req := testRequest()
	req.RoadOnly = true

	result, err := adapter.Compute(context.Background(), req)
	require.NoError(t, err)

	// A ferry section is reported, not treated as a failure.
	assert.True(t, result.HasFerry)
	assert.Equal(t, 10, result.DrivingTime)
}

func TestComputeFerryDetectionOnlyWhenRoadOnly(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"sections":[
			{"transport":{"mode":"ferry"},"summary":{"duration":600,"length":9000}}
		]}]}`))
	})

	result, err := adapter.Compute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, result.HasFerry)
}

func TestComputeZeroDistance(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"sections":[{"summary":{"duration":60,"length":0}}]}]}`))
	})

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrZeroDistance)
}

func TestComputeNoRoute(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	})

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrNoRoute)
}

func TestComputeMissingSummary(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"sections":[{"transport":{"mode":"car"}}]}]}`))
	})

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrMalformedResponse)
}

func TestComputeUpstreamStatus(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := adapter.Compute(context.Background(), testRequest())

	var statusErr *service.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
}

func TestComputeMissingCredentials(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(&config.HereConfig{})
	require.False(t, adapter.IsConfigured())

	_, err := adapter.Compute(context.Background(), testRequest())
	assert.ErrorIs(t, err, service.ErrMissingCredentials)
}

func TestComputeOneMinuteFloor(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"sections":[{"summary":{"duration":10,"length":200}}]}]}`))
	})

	result, err := adapter.Compute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, result.DrivingTime)
}

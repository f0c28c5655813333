package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts a provider for resolver tests.
type fakeProvider struct {
	name       string
	configured bool
	result     *entity.RouteResult
	err        error

	calls int32

	// gate, when set, blocks Compute until released.
	gate chan struct{}
}

func (f *fakeProvider) Name() string       { return f.name }
func (f *fakeProvider) IsConfigured() bool { return f.configured }

func (f *fakeProvider) Compute(ctx context.Context, req entity.RouteRequest) (*entity.RouteResult, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}

	copied := *f.result

	return &copied, nil
}

func (f *fakeProvider) callCount() int32 {
	return atomic.LoadInt32(&f.calls)
}

func hereResult() *entity.RouteResult {
	return &entity.RouteResult{
		DrivingTime:    15,
		DistanceMeters: 12000,
		Source:         entity.ProvenanceHere,
	}
}

func testRequest() entity.RouteRequest {
	return entity.RouteRequest{
		Start: entity.Coordinate{Lat: 59.00000, Lng: 10.00000},
		End:   entity.Coordinate{Lat: 59.10000, Lng: 10.10000},
	}
}

func newResolver(providers ...service.RouteProvider) *routeResolver {
	resolver := NewRouteResolver(&config.ResolverConfig{}, nil, providers)

	return resolver.(*routeResolver)
}

func TestResolveCachesResult(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{name: "here_routing_v8", configured: true, result: hereResult()}
	resolver := newResolver(provider)

	first := resolver.Resolve(context.Background(), testRequest())
	require.NotNil(t, first)
	assert.Equal(t, 15, first.DrivingTime)
	assert.Equal(t, entity.ProvenanceHere, first.Source)

	second := resolver.Resolve(context.Background(), testRequest())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), provider.callCount())
}

func TestResolveCoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	provider := &fakeProvider{name: "here_routing_v8", configured: true, result: hereResult(), gate: gate}
	resolver := newResolver(provider)

	const callers = 8
	results := make([]*entity.RouteResult, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = resolver.Resolve(context.Background(), testRequest())
		}()
	}

	// Let all callers arrive before the provider answers.
	assert.Eventually(t, func() bool {
		return provider.callCount() == 1
	}, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), provider.callCount())
	for _, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, *results[0], *result)
	}
}

func TestResolveFallsThroughOnZeroDistance(t *testing.T) {
	t.Parallel()

	failing := &fakeProvider{name: "here_routing_v8", configured: true, err: service.ErrZeroDistance}
	backup := &fakeProvider{name: "google_routes_v2", configured: true, result: &entity.RouteResult{
		DrivingTime:    10,
		DistanceMeters: 8000,
		Source:         entity.ProvenanceGoogle,
	}}
	resolver := newResolver(failing, backup)

	result := resolver.Resolve(context.Background(), testRequest())

	assert.Equal(t, entity.ProvenanceGoogle, result.Source)
	assert.Equal(t, 10, result.DrivingTime)
	assert.Equal(t, 8000, result.DistanceMeters)
	assert.Equal(t, int32(1), failing.callCount())
	assert.Equal(t, int32(1), backup.callCount())
}

func TestResolveSkipsUnconfiguredProviders(t *testing.T) {
	t.Parallel()

	unconfigured := &fakeProvider{name: "here_routing_v8", configured: false, result: hereResult()}
	resolver := newResolver(unconfigured)

	// Coordinates roughly 1 km apart.
	req := entity.RouteRequest{
		Start: entity.Coordinate{Lat: 59.0, Lng: 10.0},
		End:   entity.Coordinate{Lat: 59.0 + 1.0/111.195, Lng: 10.0},
	}
	result := resolver.Resolve(context.Background(), req)

	assert.Equal(t, entity.ProvenanceHaversine, result.Source)
	assert.Equal(t, 1, result.DrivingTime)
	assert.InDelta(t, 1000, result.DistanceMeters, 1)
	assert.Equal(t, int32(0), unconfigured.callCount())
}

func TestResolveTotalFallback(t *testing.T) {
	t.Parallel()

	failing := &fakeProvider{name: "here_routing_v8", configured: true, err: service.ErrNoRoute}
	resolver := newResolver(failing)

	result := resolver.Resolve(context.Background(), testRequest())

	assert.Equal(t, entity.ProvenanceHaversine, result.Source)
	assert.GreaterOrEqual(t, result.DrivingTime, 1)
}

func TestCacheKeyTruncatesBelowPrecision(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{name: "here_routing_v8", configured: true, result: hereResult()}
	resolver := newResolver(provider)

	resolver.Resolve(context.Background(), testRequest())

	// Differences below the fifth decimal place share the cache slot.
	jittered := testRequest()
	jittered.Start.Lat += 0.000004
	jittered.End.Lng += 0.000004

	resolver.Resolve(context.Background(), jittered)
	assert.Equal(t, int32(1), provider.callCount())
}

func TestCacheKeySeparatesRoadOnly(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{name: "here_routing_v8", configured: true, result: hereResult()}
	resolver := newResolver(provider)

	resolver.Resolve(context.Background(), testRequest())

	roadOnly := testRequest()
	roadOnly.RoadOnly = true
	resolver.Resolve(context.Background(), roadOnly)

	assert.Equal(t, int32(2), provider.callCount())
}

func TestCacheKeyFormat(t *testing.T) {
	t.Parallel()

	resolver := newResolver()

	req := entity.RouteRequest{
		Start:    entity.Coordinate{Lat: 59.123456, Lng: 10.1},
		End:      entity.Coordinate{Lat: 58.9, Lng: 9.87654321},
		RoadOnly: true,
	}

	assert.Equal(t, "59.12345,10.10000|58.90000,9.87654|road", resolver.cacheKey(req))

	req.RoadOnly = false
	assert.Equal(t, "59.12345,10.10000|58.90000,9.87654|any", resolver.cacheKey(req))
}

func TestResultCacheTTL(t *testing.T) {
	t.Parallel()

	cache := newResultCache(10, time.Minute)
	now := time.Now()

	cache.add("k", hereResult(), now)

	_, ok := cache.get("k", now.Add(30*time.Second))
	assert.True(t, ok)

	_, ok = cache.get("k", now.Add(2*time.Minute))
	assert.False(t, ok)

	// The expired entry is gone, not just hidden.
	assert.Empty(t, cache.entries)
}

func TestResultCacheEvictsLRU(t *testing.T) {
	t.Parallel()

	cache := newResultCache(2, 0)
	now := time.Now()

	cache.add("a", hereResult(), now)
	cache.add("b", hereResult(), now)

	// Touch "a" so "b" is the eviction candidate.
	_, ok := cache.get("a", now)
	require.True(t, ok)

	cache.add("c", hereResult(), now)

	_, ok = cache.get("b", now)
	assert.False(t, ok)
	_, ok = cache.get("a", now)
	assert.True(t, ok)
	_, ok = cache.get("c", now)
	assert.True(t, ok)
}

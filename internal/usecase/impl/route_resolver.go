package impl

import (
	"container/list"
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"
	"fergetid/internal/infra/routing/geodesic"
	"fergetid/internal/usecase"
)

// routeResolver answers driving-time queries through an ordered provider
// chain with a bounded LRU result cache and request coalescing. The chain
// terminates in the geodesic estimator, so Resolve is total.
type routeResolver struct {
	providers []service.RouteProvider
	fallback  *geodesic.Estimator
	logger    *slog.Logger

	precision int

	// mu spans the whole lookup-insert sequence over both maps so that
	// concurrent callers with the same key observe exactly one provider
	// round-trip.
	mu       sync.Mutex
	results  *resultCache
	inflight map[string]*pendingResult
}

// pendingResult is a shareable future for one in-flight chain run.
type pendingResult struct {
	done   chan struct{}
	result *entity.RouteResult
}

// NewRouteResolver creates the resolver. Providers are attempted in slice
// order; unconfigured ones are skipped.
func NewRouteResolver(cfg *config.ResolverConfig, logger *slog.Logger, providers []service.RouteProvider) usecase.RouteResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &routeResolver{
		providers: providers,
		fallback:  geodesic.NewEstimator(),
		logger:    logger,
		precision: cfg.Precision(),
		results:   newResultCache(cfg.CacheSizeOrDefault(), cfg.TTL()),
		inflight:  make(map[string]*pendingResult),
	}
}

// Resolve returns a route result for the request. It never fails; when all
// providers are down or unconfigured the geodesic estimate is returned and
// cached like any other result.
func (r *routeResolver) Resolve(ctx context.Context, req entity.RouteRequest) *entity.RouteResult {
	key := r.cacheKey(req)

	r.mu.Lock()
	if cached, ok := r.results.get(key, time.Now()); ok {
		r.mu.Unlock()

		return cached
	}

	if pending, ok := r.inflight[key]; ok {
		// Share the in-flight round-trip instead of starting another.
		r.mu.Unlock()
		<-pending.done

		return pending.result
	}

	// Install the pending entry before any I/O starts.
	pending := &pendingResult{done: make(chan struct{})}
	r.inflight[key] = pending
	r.mu.Unlock()

	result := r.runChain(ctx, req)

	r.mu.Lock()
	r.results.add(key, result, time.Now())
	// Remove the entry so later callers can retry once the TTL expires.
	delete(r.inflight, key)
	r.mu.Unlock()

	pending.result = result
	close(pending.done)

	return result
}

func (r *routeResolver) runChain(ctx context.Context, req entity.RouteRequest) *entity.RouteResult {
	for _, provider := range r.providers {
		if !provider.IsConfigured() {
			continue
		}

		result, err := provider.Compute(ctx, req)
		if err != nil {
			r.logger.Warn("route provider failed, trying next",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()),
			)

			continue
		}

		return result
	}

	result, _ := r.fallback.Compute(ctx, req)

	return result
}

// cacheKey derives the coalescing key from a request. Coordinates are
// truncated to the configured precision (default 5 decimal places, ~1.1 m)
// so near-identical queries share one cache slot.
func (r *routeResolver) cacheKey(req entity.RouteRequest) string {
	flag := "any"
	if req.RoadOnly {
		flag = "road"
	}

	var b strings.Builder
	b.WriteString(truncate(req.Start.Lat, r.precision))
	b.WriteByte(',')
	b.WriteString(truncate(req.Start.Lng, r.precision))
	b.WriteByte('|')
	b.WriteString(truncate(req.End.Lat, r.precision))
	b.WriteByte(',')
	b.WriteString(truncate(req.End.Lng, r.precision))
	b.WriteByte('|')
	b.WriteString(flag)

	return b.String()
}

func truncate(v float64, precision int) string {
	scale := math.Pow10(precision)

	return strconv.FormatFloat(math.Trunc(v*scale)/scale, 'f', precision, 64)
}

// resultCache is a size-bounded LRU with optional per-entry TTL. It is not
// safe for concurrent use; the resolver's mutex guards it.
type resultCache struct {
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key      string
	value    *entity.RouteResult
	storedAt time.Time
}

func newResultCache(capacity int, ttl time.Duration) *resultCache {
	return &resultCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *resultCache) get(key string, now time.Time) (*entity.RouteResult, bool) {
	element, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if c.ttl > 0 && now.Sub(entry.storedAt) > c.ttl {
		c.order.Remove(element)
		delete(c.entries, key)

		return nil, false
	}

	c.order.MoveToFront(element)

	return entry.value, true
}

func (c *resultCache) add(key string, value *entity.RouteResult, now time.Time) {
	if element, ok := c.entries[key]; ok {
		entry := element.Value.(*cacheEntry)
		entry.value = value
		entry.storedAt = now
		c.order.MoveToFront(element)

		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, value: value, storedAt: now})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

package service

import (
	"context"
	"fmt"

	"fergetid/internal/domain/entity"

	"github.com/pkg/errors"
)

// RouteProvider is the capability set a routing backend exposes to the
// resolver chain. Adding a provider means registering another value in the
// chain; no hierarchy is involved.
type RouteProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// IsConfigured reports whether credentials and endpoints are present.
	// Unconfigured providers are skipped silently.
	IsConfigured() bool

	// Compute resolves the request against the backend. Implementations
	// must return ErrZeroDistance instead of a zero-distance result so
	// the resolver fails over to the next provider.
	Compute(ctx context.Context, req entity.RouteRequest) (*entity.RouteResult, error)
}

// Adapter-local error taxonomy. The resolver logs these at warn level and
// continues down the chain; none of them surface to the resolver's caller.
var (
	ErrMissingCredentials = errors.New("provider not configured")
	ErrNoRoute            = errors.New("no route in provider response")
	ErrMalformedResponse  = errors.New("provider response missing required fields")
	ErrZeroDistance       = errors.New("provider returned zero distance")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.Code)
}

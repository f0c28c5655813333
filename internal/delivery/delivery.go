// Package delivery defines the transport-agnostic serving contract.
package delivery

import "context"

// Delivery is a serving surface started by the application container.
type Delivery interface {
	Serve(ctx context.Context) error
}

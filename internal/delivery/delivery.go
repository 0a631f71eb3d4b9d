// Package delivery defines the contract for the process's inbound transports.
package delivery

import "context"

// Delivery is a transport that serves until its listener is closed.
type Delivery interface {
	Serve(ctx context.Context) error
}

// Package delivery defines the contract every transport front-end satisfies.
package delivery

import "context"

// Delivery is a serving front-end (HTTP today) started by the application.
type Delivery interface {
	Serve(ctx context.Context) error
}

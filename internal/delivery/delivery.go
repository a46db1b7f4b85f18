// Package delivery defines the contract every transport entrypoint
// (HTTP, workers) satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running server started by main and stopped
// through an fx lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}

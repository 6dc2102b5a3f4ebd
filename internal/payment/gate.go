// Package payment simulates the checkout flow that gates PDF exports.
package payment

import (
	"context"
	"time"
)

// Gate models a payment provider round trip. There is no real charge;
// the configured delay stands in for the provider's latency so the
// client-side flow behaves like the real thing.
type Gate struct {
	Delay time.Duration
}

// Authorize waits out the provider delay and reports success. A
// cancelled context abandons the payment without charging anything.
func (g *Gate) Authorize(ctx context.Context) error {
	timer := time.NewTimer(g.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package commands

import (
	"context"
	"time"
)

// waitFor blocks for the given duration or until the context is done,
// whichever comes first. A non-positive duration returns immediately.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package auth

import (
	"context"
	"time"
)

// RunSweeper deletes expired sessions once immediately and then every
// interval until ctx is cancelled. Failed passes are logged and retried on
// the next tick.
func (a *Authority) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	a.sweepOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.sweepOnce(ctx)
		}
	}
}

func (a *Authority) sweepOnce(ctx context.Context) {
	removed, err := a.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(ctx, "session sweep failed", "error", err)
		}
		return
	}
	if removed > 0 {
		a.logger.Info(ctx, "expired sessions removed", "count", removed)
	}
}

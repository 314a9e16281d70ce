package playback

import (
	"context"
	"time"
)

// RunTimer drives t from a wall-clock ticker at its frame interval until ctx
// is done. It is meant for hosts without their own frame loop.
func RunTimer(ctx context.Context, t *Transport) {
	interval := t.FrameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Tick(now.Sub(last))
			last = now
		}
	}
}

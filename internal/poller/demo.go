package poller

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	demoStep     = 5
	demoInterval = 150 * time.Millisecond
)

// Demo drives a progress counter from 0 to 100 for screens that have no
// analysis to track. It touches neither the backend nor the result cache.
// It returns nil once 100 is reported, or ctx.Err() if cancelled first.
func Demo(ctx context.Context, clock clockwork.Clock, onProgress func(percent int)) error {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	for progress := 0; ; progress += demoStep {
		if onProgress != nil {
			onProgress(progress)
		}
		if progress >= 100 {
			return nil
		}
		timer := clock.NewTimer(demoInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
		}
	}
}

package mockbackend

import (
	"math"
	"sync"
	"time"
)

// pollLimiter rejects reads of the same analysis by the same client that
// arrive closer together than window.
type pollLimiter struct {
	mu      sync.Mutex
	lastHit map[string]time.Time
	now     func() time.Time
	window  time.Duration
}

// newPollLimiter returns nil, which allows everything, when window is not positive.
func newPollLimiter(window time.Duration, now func() time.Time) *pollLimiter {
	if window <= 0 {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &pollLimiter{
		lastHit: make(map[string]time.Time),
		now:     now,
		window:  window,
	}
}

func (l *pollLimiter) Allow(clientID, analysisID string) bool {
	if l == nil {
		return true
	}
	key := clientID + "|" + analysisID
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.lastHit[key]; ok {
		if now.Sub(last) < l.window {
			return false
		}
	}
	l.lastHit[key] = now
	return true
}

func (l *pollLimiter) RetryAfterSeconds() int {
	if l == nil {
		return 0
	}
	return int(math.Ceil(l.window.Seconds()))
}

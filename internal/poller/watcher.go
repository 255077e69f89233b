package poller

import (
	"context"
	"strings"
	"sync"
)

// TrackFunc starts a session for one analysis. (*Poller).Track is one.
type TrackFunc func(ctx context.Context, analysisID string, cb Callbacks) *Session

// Watcher keeps at most one live session, replacing it when the subject changes.
type Watcher struct {
	track TrackFunc

	mu      sync.Mutex
	id      string
	session *Session
}

// NewWatcher returns a Watcher that starts sessions with track.
func NewWatcher(track TrackFunc) *Watcher {
	return &Watcher{track: track}
}

// Watch tracks analysisID. Asking again for the id of a live session returns
// that session; a different id stops the previous session.
func (w *Watcher) Watch(ctx context.Context, analysisID string, cb Callbacks) *Session {
	id := strings.TrimSpace(analysisID)

	w.mu.Lock()
	if w.session != nil && w.id == id && !isDone(w.session) {
		s := w.session
		w.mu.Unlock()
		return s
	}
	prev := w.session
	w.id = id
	w.session = w.track(ctx, id, cb)
	cur := w.session
	w.mu.Unlock()

	// Stop waits for the old session's goroutine, whose callbacks may call
	// back into the Watcher.
	if prev != nil {
		prev.Stop()
	}
	return cur
}

// Current returns the id and session being watched, if any.
func (w *Watcher) Current() (string, *Session) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.id, w.session
}

// Stop ends the current session, if any.
func (w *Watcher) Stop() {
	w.mu.Lock()
	prev := w.session
	w.session = nil
	w.id = ""
	w.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
}

func isDone(s *Session) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

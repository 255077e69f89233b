package poller

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the fixed delay between fetches.
const DefaultInterval = 3000 * time.Millisecond

// Poller runs Machines on a clock. The zero Clock and Interval fall back to
// the real clock and DefaultInterval.
type Poller struct {
	Fetcher  Fetcher
	Clock    clockwork.Clock
	Interval time.Duration
}

// Session is one running Track call.
type Session struct {
	machine *Machine
	cancel  context.CancelFunc
	done    chan struct{}
}

// Track starts polling analysisID. The first fetch happens immediately; the
// session ends at a terminal status, a transport error, ctx cancellation or
// Stop. A blank analysisID yields an already finished idle session.
func (p *Poller) Track(ctx context.Context, analysisID string, cb Callbacks) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		machine: NewMachine(p.Fetcher, cb),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if !s.machine.Start(analysisID) {
		cancel()
		close(s.done)
		return s
	}
	go s.run(ctx, p.clock(), p.interval())
	return s
}

func (s *Session) run(ctx context.Context, clock clockwork.Clock, interval time.Duration) {
	defer close(s.done)
	defer s.cancel()
	for {
		if s.machine.Tick(ctx) != StepContinue {
			return
		}
		timer := clock.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.machine.Cancel()
			return
		case <-timer.Chan():
		}
	}
}

// Stop cancels the session and waits for its goroutine to exit. No callback
// fires after Stop returns.
func (s *Session) Stop() {
	s.machine.Cancel()
	s.cancel()
	<-s.done
}

// Done is closed when the session has ended.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Snapshot returns the session's current progress.
func (s *Session) Snapshot() Snapshot {
	return s.machine.Snapshot()
}

func (p *Poller) clock() clockwork.Clock {
	if p.Clock == nil {
		return clockwork.NewRealClock()
	}
	return p.Clock
}

func (p *Poller) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultInterval
	}
	return p.Interval
}

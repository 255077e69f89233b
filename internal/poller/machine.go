package poller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"skincare-client/internal/analyses"
	"skincare-client/internal/shared/metrics"
	"skincare-client/internal/shared/telemetry"
)

const (
	// FailedMessage is shown when a failed analysis carries no message.
	FailedMessage = "Analysis failed. Please try again."
	// TransportErrorMessage is shown when the backend cannot be reached.
	TransportErrorMessage = "Could not reach the analysis service. Please try again."
)

// Fetcher is the slice of analyses.Fetcher the poller needs.
type Fetcher interface {
	GetByID(ctx context.Context, analysisID string) (analyses.Analysis, error)
}

// Step tells the driver what to do after a Tick.
type Step int

const (
	// StepContinue means the analysis is still running; fetch again after the interval.
	StepContinue Step = iota
	// StepSettled means a terminal status was reached.
	StepSettled
	// StepStopped means the session is idle or was cancelled.
	StepStopped
)

// Machine is the polling state machine. It owns no timers: a driver calls
// Tick, and schedules the next Tick when it returns StepContinue.
type Machine struct {
	fetcher Fetcher
	cb      Callbacks

	mu       sync.Mutex
	snap     Snapshot
	notified bool
}

// NewMachine returns an idle machine.
func NewMachine(fetcher Fetcher, cb Callbacks) *Machine {
	return &Machine{fetcher: fetcher, cb: cb}
}

// Start moves an idle machine to polling for analysisID. It returns false
// for a blank id or when a session is already running.
func (m *Machine) Start(analysisID string) bool {
	id := strings.TrimSpace(analysisID)
	if id == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap.State == StatePolling {
		return false
	}
	m.snap = Snapshot{AnalysisID: id, State: StatePolling}
	m.notified = false
	telemetry.Info("poller.started", map[string]any{"analysis_id": id})
	return true
}

// Tick performs one fetch and one transition.
func (m *Machine) Tick(ctx context.Context) Step {
	m.mu.Lock()
	if m.snap.State != StatePolling {
		m.mu.Unlock()
		return StepStopped
	}
	id := m.snap.AnalysisID
	m.mu.Unlock()

	metrics.IncPollFetch()
	analysis, err := m.fetcher.GetByID(ctx, id)

	m.mu.Lock()
	if m.snap.State != StatePolling {
		// Cancelled while the fetch was in flight.
		m.mu.Unlock()
		return StepStopped
	}
	m.snap.Attempts++

	var (
		step       = StepContinue
		onComplete bool
		errMsg     string
	)
	switch {
	case err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled)):
		m.snap.State = StateIdle
		m.snap.Cancelled = true
		m.mu.Unlock()
		metrics.IncPollSettled("cancelled")
		return StepStopped
	case err != nil:
		m.snap.State = StateFailed
		m.snap.Message = TransportErrorMessage
		errMsg = TransportErrorMessage
		step = StepSettled
		telemetry.Warn("poller.fetch_failed", map[string]any{
			"analysis_id": id,
			"attempts":    m.snap.Attempts,
			"error":       err,
		})
		metrics.IncPollSettled("error")
	default:
		m.snap.LastStatus = analysis.Status
		switch analysis.Status {
		case analyses.StatusCompleted:
			m.snap.State = StateCompleted
			onComplete = true
			step = StepSettled
			metrics.IncPollSettled(string(analyses.StatusCompleted))
		case analyses.StatusFailed:
			msg := strings.TrimSpace(analysis.ErrorMessage)
			if msg == "" {
				msg = FailedMessage
			}
			m.snap.State = StateFailed
			m.snap.Message = msg
			errMsg = msg
			step = StepSettled
			metrics.IncPollSettled(string(analyses.StatusFailed))
		}
	}

	fire := step == StepSettled && !m.notified
	if fire {
		m.notified = true
	}
	snap := m.snap
	m.mu.Unlock()

	if step == StepSettled {
		telemetry.Info("poller.settled", map[string]any{
			"analysis_id": id,
			"state":       snap.State.String(),
			"attempts":    snap.Attempts,
		})
	}
	if m.cb.OnStatus != nil {
		m.cb.OnStatus(snap)
	}
	if fire {
		if onComplete && m.cb.OnComplete != nil {
			m.cb.OnComplete(id)
		}
		if errMsg != "" && m.cb.OnError != nil {
			m.cb.OnError(errMsg)
		}
	}
	return step
}

// Cancel stops a polling session. A fetch already in flight is ignored when it returns.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap.State != StatePolling {
		return
	}
	m.snap.State = StateIdle
	m.snap.Cancelled = true
	metrics.IncPollSettled("cancelled")
	telemetry.Info("poller.cancelled", map[string]any{
		"analysis_id": m.snap.AnalysisID,
		"attempts":    m.snap.Attempts,
	})
}

// Snapshot returns the current progress.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

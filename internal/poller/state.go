package poller

import "skincare-client/internal/analyses"

// State is the lifecycle of one polling session.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText lets State appear as its name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Settled reports whether s is a terminal state.
func (s State) Settled() bool {
	return s == StateCompleted || s == StateFailed
}

// Snapshot is a copy of a session's progress.
type Snapshot struct {
	AnalysisID string          `json:"analysisId"`
	State      State           `json:"state"`
	LastStatus analyses.Status `json:"status,omitempty"`
	Attempts   int             `json:"attempts"`
	Message    string          `json:"message,omitempty"`
	Cancelled  bool            `json:"cancelled,omitempty"`
}

// Callbacks receive session events. Any of them may be nil. OnComplete and
// OnError fire at most once per session, and never after cancellation.
type Callbacks struct {
	OnComplete func(analysisID string)
	OnError    func(message string)
	OnStatus   func(Snapshot)
}

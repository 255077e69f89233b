package mockbackend

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"skincare-client/internal/analyses"
	"skincare-client/internal/shared/telemetry"
)

type entry struct {
	analysis analyses.Analysis
	script   Script
	reads    int
}

// MemoryRepo stores scripted analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.Mutex
	byID  map[string]*entry
	order []string
	clock clockwork.Clock
}

// NewMemoryRepo constructs a MemoryRepo. A nil clock uses the real clock.
func NewMemoryRepo(clock clockwork.Clock) *MemoryRepo {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryRepo{
		byID:  make(map[string]*entry),
		clock: clock,
	}
}

// Create stores a new analysis following script. A blank script ID gets a UUID.
func (r *MemoryRepo) Create(ctx context.Context, script Script) (analyses.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return analyses.Analysis{}, err
	}
	id := strings.TrimSpace(script.ID)
	if id == "" {
		id = uuid.NewString()
	}
	script.ID = id
	if script.ProcessingPolls < 0 {
		script.ProcessingPolls = 0
	}

	e := &entry{
		analysis: analyses.Analysis{
			ID:        id,
			Status:    analyses.StatusPending,
			CreatedAt: r.clock.Now().UTC(),
		},
		script: script,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = e
	return e.analysis, nil
}

// Advance returns the analysis as of this read and moves its script forward.
func (r *MemoryRepo) Advance(ctx context.Context, analysisID string) (analyses.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return analyses.Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[analysisID]
	if !ok {
		return analyses.Analysis{}, ErrNotFound
	}

	prev := e.analysis.Status
	e.analysis.Status = e.script.statusAt(e.reads)
	e.reads++
	if prev != e.analysis.Status {
		e.apply()
		telemetry.Info("mockbackend.status_changed", map[string]any{
			"analysis_id": analysisID,
			"request_id":  requestIDFromContext(ctx),
			"from":        string(prev),
			"to":          string(e.analysis.Status),
			"reads":       e.reads,
		})
	}
	return cloneAnalysis(e.analysis), nil
}

// Latest returns the most recently created analysis without advancing it.
func (r *MemoryRepo) Latest(ctx context.Context) (analyses.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return analyses.Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) == 0 {
		return analyses.Analysis{}, ErrNotFound
	}
	return cloneAnalysis(r.byID[r.order[len(r.order)-1]].analysis), nil
}

// apply fills in the payload for a terminal status.
func (e *entry) apply() {
	switch e.analysis.Status {
	case analyses.StatusCompleted:
		e.analysis.Metrics = e.script.Metrics
		e.analysis.Routine = e.script.Routine
		e.analysis.Products = e.script.Products
	case analyses.StatusFailed:
		e.analysis.ErrorMessage = e.script.ErrorMessage
	}
}

func cloneAnalysis(a analyses.Analysis) analyses.Analysis {
	if a.Metrics != nil {
		m := make(map[string]*float64, len(a.Metrics))
		for k, v := range a.Metrics {
			if v != nil {
				cp := *v
				v = &cp
			}
			m[k] = v
		}
		a.Metrics = m
	}
	a.Routine = append([]analyses.RoutineStep(nil), a.Routine...)
	a.Products = append([]analyses.Product(nil), a.Products...)
	return a
}

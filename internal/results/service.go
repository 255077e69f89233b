// Package results turns backend analyses into display-ready results.
package results

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"skincare-client/internal/analyses"
	"skincare-client/internal/poller"
	"skincare-client/internal/queue"
	"skincare-client/internal/scoring"
	"skincare-client/internal/shared/telemetry"
)

var ErrNotReady = errors.New("analysis not completed")

const publishTimeout = 5 * time.Second

// MetricCache memoizes boosted metrics per analysis.
type MetricCache interface {
	GetOrCompute(ctx context.Context, analysisID string, raw []scoring.Metric) []scoring.Metric
}

// Translator rewrites backend free text for display.
type Translator interface {
	StepName(text string) string
	Instructions(text string) string
	ProductName(text string) string
}

// View is a completed analysis ready for display. Metrics holds boosted
// scores for unlocked metrics; Locked names metrics the backend could not score.
type View struct {
	AnalysisID   string                 `json:"analysisId"`
	Status       analyses.Status        `json:"status"`
	OverallScore int                    `json:"overallScore"`
	Metrics      []scoring.Metric       `json:"metrics"`
	Locked       []string               `json:"locked"`
	Routine      []analyses.RoutineStep `json:"routine"`
	Products     []analyses.Product     `json:"products"`
	CreatedAt    time.Time              `json:"createdAt,omitzero"`
}

// Service assembles Views and tracks running analyses.
type Service struct {
	fetcher    analyses.Fetcher
	cache      MetricCache
	translator Translator
	poller     *poller.Poller
	publisher  queue.Client
	clock      clockwork.Clock
}

// Option configures a Service.
type Option func(*Service)

// WithPoller sets the poller used by Watch.
func WithPoller(p *poller.Poller) Option {
	return func(s *Service) { s.poller = p }
}

// WithPublisher publishes a settle event whenever a watched analysis finishes.
func WithPublisher(c queue.Client) Option {
	return func(s *Service) { s.publisher = c }
}

// WithClock sets the clock used for settle event timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService constructs a Service.
func NewService(fetcher analyses.Fetcher, cache MetricCache, translator Translator, opts ...Option) *Service {
	s := &Service{
		fetcher:    fetcher,
		cache:      cache,
		translator: translator,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.poller == nil {
		s.poller = &poller.Poller{Fetcher: fetcher, Clock: s.clock}
	}
	return s
}

// Result fetches analysisID and presents it. An analysis that has not
// completed yields a View carrying only its status, and ErrNotReady.
func (s *Service) Result(ctx context.Context, analysisID string) (View, error) {
	a, err := s.fetcher.GetByID(ctx, analysisID)
	if err != nil {
		return View{}, err
	}
	return s.Present(ctx, a)
}

// Latest presents the user's most recent analysis. It returns nil when the
// user has none.
func (s *Service) Latest(ctx context.Context) (*View, error) {
	a, err := s.fetcher.Latest(ctx)
	if err != nil || a == nil {
		return nil, err
	}
	v, err := s.Present(ctx, *a)
	if err != nil && !errors.Is(err, ErrNotReady) {
		return nil, err
	}
	return &v, err
}

// Present builds a View from an already fetched analysis.
func (s *Service) Present(ctx context.Context, a analyses.Analysis) (View, error) {
	view := View{AnalysisID: a.ID, Status: a.Status, CreatedAt: a.CreatedAt}
	if a.Status != analyses.StatusCompleted {
		return view, fmt.Errorf("%w: status %s", ErrNotReady, a.Status)
	}

	extracted := analyses.ExtractMetrics(a.Metrics)
	visible := analyses.VisibleMetrics(extracted)
	view.Metrics = s.cache.GetOrCompute(ctx, a.ID, visible)
	view.Locked = lockedTitles(extracted)
	view.OverallScore = OverallScore(view.Metrics)

	view.Routine = make([]analyses.RoutineStep, len(a.Routine))
	for i, step := range a.Routine {
		step.Name = s.translator.StepName(step.Name)
		step.Instructions = s.translator.Instructions(step.Instructions)
		view.Routine[i] = step
	}
	view.Products = make([]analyses.Product, len(a.Products))
	for i, p := range a.Products {
		p.Name = s.translator.ProductName(p.Name)
		view.Products[i] = p
	}
	return view, nil
}

// Watch polls analysisID until it settles. When a publisher is configured a
// settle event is sent before cb's terminal callback runs.
func (s *Service) Watch(ctx context.Context, analysisID string, cb poller.Callbacks) *poller.Session {
	if s.publisher == nil {
		return s.poller.Track(ctx, analysisID, cb)
	}
	inner := cb.OnStatus
	wrapped := cb
	wrapped.OnStatus = func(snap poller.Snapshot) {
		if snap.State.Settled() && snap.LastStatus.IsTerminal() {
			s.publishSettled(ctx, snap)
		}
		if inner != nil {
			inner(snap)
		}
	}
	return s.poller.Track(ctx, analysisID, wrapped)
}

func (s *Service) publishSettled(ctx context.Context, snap poller.Snapshot) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := queue.Message{
		AnalysisID: snap.AnalysisID,
		Status:     string(snap.LastStatus),
		SettledAt:  s.clock.Now().UTC().Format(time.RFC3339),
		Version:    queue.MessageVersion,
	}
	if snap.State == poller.StateFailed {
		msg.ErrorMessage = snap.Message
	}
	if err := s.publisher.Send(pubCtx, msg); err != nil {
		telemetry.Warn("results.publish_failed", map[string]any{
			"analysis_id": snap.AnalysisID,
			"error":       err,
		})
	}
}

// OverallScore is the rounded mean of unlocked scores, or 0 when there are none.
func OverallScore(metrics []scoring.Metric) int {
	var sum, n int
	for _, m := range metrics {
		if m.Locked {
			continue
		}
		sum += m.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

func lockedTitles(metrics []scoring.Metric) []string {
	out := []string{}
	for _, m := range metrics {
		if m.Locked {
			out = append(out, strings.TrimSpace(m.Title))
		}
	}
	return out
}

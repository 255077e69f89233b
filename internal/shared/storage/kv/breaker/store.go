package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"skincare-client/internal/shared/metrics"
	"skincare-client/internal/shared/storage/kv"
	"skincare-client/internal/shared/telemetry"
)

// Store guards a remote kv.Store with a circuit breaker. While open, calls
// fail fast with gobreaker.ErrOpenState.
type Store struct {
	next    kv.Store
	backend string
	cb      *gobreaker.CircuitBreaker
}

// Settings returns breaker settings that trip after 5 consecutive failures
// and probe again after timeout.
func Settings(name string, timeout time.Duration) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, kv.ErrEmptyKey)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("kv.breaker_state", map[string]any{
				"backend": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	}
}

// Wrap returns next guarded by a breaker named after backend.
func Wrap(next kv.Store, backend string) *Store {
	return WrapWithSettings(next, backend, Settings(backend, 30*time.Second))
}

// WrapWithSettings is Wrap with explicit breaker settings.
func WrapWithSettings(next kv.Store, backend string, st gobreaker.Settings) *Store {
	return &Store{next: next, backend: backend, cb: gobreaker.NewCircuitBreaker(st)}
}

type getResult struct {
	value string
	ok    bool
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		v, ok, err := s.next.Get(ctx, key)
		return getResult{value: v, ok: ok}, err
	})
	if err != nil {
		metrics.IncKVError(s.backend, "get")
		return "", false, err
	}
	r := res.(getResult)
	return r.value, r.ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Set(ctx, key, value)
	})
	if err != nil {
		metrics.IncKVError(s.backend, "set")
	}
	return err
}

// State reports the breaker state.
func (s *Store) State() gobreaker.State {
	return s.cb.State()
}

var _ kv.Store = (*Store)(nil)

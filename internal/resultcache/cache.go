// Package resultcache makes boosted scores idempotent per analysis by
// persisting the first computed set and replaying it on every later call.
package resultcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"skincare-client/internal/scoring"
	"skincare-client/internal/shared/metrics"
	"skincare-client/internal/shared/storage/kv"
	"skincare-client/internal/shared/telemetry"
)

// KeyPrefix namespaces cache records in the shared key-value store.
const KeyPrefix = "boosted_metrics_"

// flightTimeout bounds one shared read-compute-write round against the store.
const flightTimeout = 30 * time.Second

// Key returns the store key for an analysis.
func Key(analysisID string) string {
	return KeyPrefix + analysisID
}

// Record is the persisted form of a boosted metric set.
type Record struct {
	AnalysisID      string           `json:"-"`
	OriginalMetrics []scoring.Metric `json:"originalMetrics"`
	BoostedMetrics  []scoring.Metric `json:"boostedMetrics"`
	Timestamp       int64            `json:"timestamp"`
}

// Normalizer is the transform whose output gets memoized.
type Normalizer interface {
	NormalizeAll(metrics []scoring.Metric) []scoring.Metric
}

// Cache memoizes Normalizer output per analysis id in a kv.Store.
type Cache struct {
	store      kv.Store
	normalizer Normalizer
	clock      clockwork.Clock
	inflight   singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for record timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// New constructs a Cache.
func New(store kv.Store, normalizer Normalizer, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		normalizer: normalizer,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the boosted metrics for analysisID, computing and
// persisting them on first use. It never fails: store problems degrade to an
// uncached computation. A blank analysisID skips the store entirely; any
// other id is used verbatim in the store key.
func (c *Cache) GetOrCompute(ctx context.Context, analysisID string, raw []scoring.Metric) []scoring.Metric {
	if strings.TrimSpace(analysisID) == "" {
		metrics.IncResultCache(metrics.CacheBypass)
		return c.normalizer.NormalizeAll(raw)
	}
	id := analysisID

	// Callers with a differently shaped metric set must not share a result.
	flightKey := id + "#" + strconv.Itoa(len(raw))
	v, _, _ := c.inflight.Do(flightKey, func() (any, error) {
		// Joined callers receive this result, so one caller's cancellation
		// must not turn it into an unpersisted computation.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return c.getOrCompute(fctx, id, raw), nil
	})
	return scoring.CloneMetrics(v.([]scoring.Metric))
}

func (c *Cache) getOrCompute(ctx context.Context, id string, raw []scoring.Metric) []scoring.Metric {
	rec, found, err := c.read(ctx, id)
	if err != nil {
		metrics.IncResultCache(metrics.CacheReadError)
		telemetry.Warn("result_cache.read_failed", map[string]any{
			"analysis_id": id,
			"error":       err,
		})
		return c.normalizer.NormalizeAll(raw)
	}
	if found && len(rec.BoostedMetrics) == len(raw) {
		metrics.IncResultCache(metrics.CacheHit)
		return rec.BoostedMetrics
	}
	if found {
		telemetry.Info("result_cache.shape_changed", map[string]any{
			"analysis_id": id,
			"cached":      len(rec.BoostedMetrics),
			"current":     len(raw),
		})
	}
	metrics.IncResultCache(metrics.CacheMiss)

	boosted := c.normalizer.NormalizeAll(raw)
	c.write(ctx, Record{
		AnalysisID:      id,
		OriginalMetrics: scoring.CloneMetrics(raw),
		BoostedMetrics:  boosted,
		Timestamp:       c.clock.Now().UnixMilli(),
	})
	return boosted
}

// Lookup returns the stored record for analysisID without computing anything.
// A malformed record reports found=false.
func (c *Cache) Lookup(ctx context.Context, analysisID string) (Record, bool, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Record{}, false, nil
	}
	return c.read(ctx, analysisID)
}

func (c *Cache) read(ctx context.Context, id string) (Record, bool, error) {
	raw, ok, err := c.store.Get(ctx, Key(id))
	if err != nil {
		return Record{}, false, fmt.Errorf("read %s: %w", Key(id), err)
	}
	if !ok {
		return Record{}, false, nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		metrics.IncResultCache(metrics.CacheMalformed)
		telemetry.Warn("result_cache.malformed", map[string]any{
			"analysis_id": id,
			"error":       err,
		})
		return Record{}, false, nil
	}
	rec.AnalysisID = id
	return rec, true, nil
}

func (c *Cache) write(ctx context.Context, rec Record) {
	payload, err := json.Marshal(rec)
	if err == nil {
		err = c.store.Set(ctx, Key(rec.AnalysisID), string(payload))
	}
	if err != nil {
		metrics.IncResultCache(metrics.CacheWriteError)
		telemetry.Error("result_cache.write_failed", map[string]any{
			"analysis_id": rec.AnalysisID,
			"error":       err,
		})
		return
	}
	telemetry.Info("result_cache.stored", map[string]any{
		"analysis_id": rec.AnalysisID,
		"metrics":     len(rec.BoostedMetrics),
	})
}

package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup outcomes.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheBypass     = "bypass"
	CacheReadError  = "read_error"
	CacheWriteError = "write_error"
	CacheMalformed  = "malformed"
)

// Registry is the private registry exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	pollFetchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skincare_poll_fetch_total",
		Help: "Total fetches issued by analysis poll sessions.",
	})

	pollSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skincare_poll_settled_total",
		Help: "Poll sessions that reached a terminal state, by outcome.",
	}, []string{"outcome"})

	resultCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skincare_result_cache_total",
		Help: "Result cache lookups and failures, by result.",
	}, []string{"result"})

	kvErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skincare_kv_errors_total",
		Help: "Key-value store errors, by backend and operation.",
	}, []string{"backend", "op"})

	translationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skincare_translations_applied_total",
		Help: "Content normalizer calls that changed their input, by kind.",
	}, []string{"kind"})

	settleEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skincare_settle_events_total",
		Help: "Settle events published or consumed, by direction and result.",
	}, []string{"direction", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		pollFetchTotal,
		pollSettledTotal,
		resultCacheTotal,
		kvErrorsTotal,
		translationsTotal,
		settleEventsTotal,
	)
}

// IncPollFetch counts one poll fetch.
func IncPollFetch() {
	pollFetchTotal.Inc()
}

// IncPollSettled counts a settled poll session with the given outcome (completed, failed, error).
func IncPollSettled(outcome string) {
	pollSettledTotal.WithLabelValues(outcome).Inc()
}

// IncResultCache counts a result cache event.
func IncResultCache(result string) {
	resultCacheTotal.WithLabelValues(result).Inc()
}

// IncKVError counts a key-value store failure.
func IncKVError(backend, op string) {
	kvErrorsTotal.WithLabelValues(backend, op).Inc()
}

// IncTranslation counts a content normalization that changed its input.
func IncTranslation(kind string) {
	translationsTotal.WithLabelValues(kind).Inc()
}

// IncSettleEvent counts a settle event published ("out") or consumed ("in").
func IncSettleEvent(direction, result string) {
	settleEventsTotal.WithLabelValues(direction, result).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

package scoring

import (
	"math/rand/v2"
	"sync"
)

// Band edges for score boosting.
const (
	lowCutoff   = 70 // raw < 70 is replaced by [70, 75]
	midUpper    = 75 // 70 <= raw <= 75 is replaced by [80, 85]
	highCutoff  = 94 // raw >= 94 is left unchanged
	lowFloorMin = 70
	lowFloorMax = 75
	midFloorMin = 80
	midFloorMax = 85
	bumpMin     = 1
	bumpMax     = 6
	maxScore    = 100
	minScore    = 0
)

// Normalizer applies the cosmetic boosting transform to display scores.
type Normalizer struct {
	flag Flag

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRand makes the Normalizer draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(n *Normalizer) {
		n.rng = r
	}
}

// New constructs a Normalizer. A nil flag disables boosting.
func New(flag Flag, opts ...Option) *Normalizer {
	if flag == nil {
		flag = StaticFlag(false)
	}
	n := &Normalizer{flag: flag}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeScore maps a raw 0-100 score to its boosted value.
//
//	raw < 70         -> uniform [70, 75]
//	70 <= raw <= 75  -> uniform [80, 85]
//	76 <= raw < 94   -> min(100, raw + uniform [1, 6])
//	raw >= 94        -> raw
//
// With boosting disabled it returns raw clamped to [0, 100].
func (n *Normalizer) NormalizeScore(raw int) int {
	raw = clamp(raw)
	if !n.flag.Enabled() {
		return raw
	}
	switch {
	case raw < lowCutoff:
		return n.between(lowFloorMin, lowFloorMax)
	case raw <= midUpper:
		return n.between(midFloorMin, midFloorMax)
	case raw < highCutoff:
		return min(maxScore, raw+n.between(bumpMin, bumpMax))
	default:
		return raw
	}
}

// NormalizeAll maps every metric's score through NormalizeScore, keeping order
// and all other fields. The input slice is not modified.
func (n *Normalizer) NormalizeAll(metrics []Metric) []Metric {
	out := make([]Metric, len(metrics))
	for i, m := range metrics {
		m.Score = n.NormalizeScore(m.Score)
		out[i] = m
	}
	return out
}

// between returns a uniformly random integer in [lo, hi].
func (n *Normalizer) between(lo, hi int) int {
	span := hi - lo + 1
	if n.rng == nil {
		return lo + rand.IntN(span)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return lo + n.rng.IntN(span)
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

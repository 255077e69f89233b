package scoring

import "math"

// Metric is a display-ready skin metric.
type Metric struct {
	Title  string `json:"title"`
	Score  int    `json:"score"`
	Locked bool   `json:"locked"`
}

// DisplayScore converts a backend severity fraction (higher is worse) into a
// 0-100 goodness score: round((1 - severity) * 100).
func DisplayScore(severity float64) int {
	if math.IsNaN(severity) {
		return 0
	}
	if severity < 0 {
		severity = 0
	}
	if severity > 1 {
		severity = 1
	}
	return int(math.Round((1 - severity) * 100))
}

// CloneMetrics returns a copy of metrics that does not share backing storage.
func CloneMetrics(metrics []Metric) []Metric {
	if metrics == nil {
		return nil
	}
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

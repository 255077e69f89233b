package analyses

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skincare-client/internal/scoring"
)

type catalogEntry struct {
	key   string
	title string
}

// catalog fixes the display order of known metrics.
var catalog = []catalogEntry{
	{key: "acne", title: "Acne"},
	{key: "wrinkles", title: "Wrinkles"},
	{key: "dark_circles", title: "Dark Circles"},
	{key: "pores", title: "Pores"},
	{key: "redness", title: "Redness"},
	{key: "oiliness", title: "Oiliness"},
	{key: "pigmentation", title: "Pigmentation"},
	{key: "texture", title: "Texture"},
	{key: "hydration", title: "Hydration"},
}

// ExtractMetrics converts backend severities into display metrics. Known
// metrics come first in catalog order, unknown ones follow sorted by key.
// A nil severity produces a locked metric with score 0. When several backend
// keys normalize to one metric, the canonical spelling wins, then the
// lexicographically smallest key.
//
// Values in [0,1] are severity fractions and are inverted with
// scoring.DisplayScore. Larger values are taken as display-scale scores.
func ExtractMetrics(raw map[string]*float64) []scoring.Metric {
	if len(raw) == 0 {
		return []scoring.Metric{}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	normalized := make(map[string]*float64, len(raw))
	for _, k := range keys {
		nk := normalizeKey(k)
		if _, seen := normalized[nk]; !seen || k == nk {
			normalized[nk] = raw[k]
		}
	}

	out := make([]scoring.Metric, 0, len(normalized))
	known := make(map[string]bool, len(catalog))
	for _, entry := range catalog {
		known[entry.key] = true
		if v, ok := normalized[entry.key]; ok {
			out = append(out, toMetric(entry.title, v))
		}
	}

	var extra []string
	for k := range normalized {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, toMetric(titleFor(k), normalized[k]))
	}
	return out
}

// VisibleMetrics drops locked metrics. Scores play no part in the decision.
func VisibleMetrics(metrics []scoring.Metric) []scoring.Metric {
	out := make([]scoring.Metric, 0, len(metrics))
	for _, m := range metrics {
		if !m.Locked {
			out = append(out, m)
		}
	}
	return out
}

func toMetric(title string, v *float64) scoring.Metric {
	if v == nil || math.IsNaN(*v) {
		return scoring.Metric{Title: title, Locked: true}
	}
	if *v <= 1 {
		return scoring.Metric{Title: title, Score: scoring.DisplayScore(*v)}
	}
	return scoring.Metric{Title: title, Score: int(math.Round(min(*v, 100)))}
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "-", "_")
	return strings.ReplaceAll(k, " ", "_")
}

func titleFor(key string) string {
	// Casers carry state, so one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

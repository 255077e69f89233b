package scoring

import (
	"math/rand/v2"
	"testing"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestNormalizeScoreBands(t *testing.T) {
	n := New(StaticFlag(true), WithRand(seeded()))
	src := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 10000; i++ {
		raw := src.IntN(101)
		out := n.NormalizeScore(raw)
		switch {
		case raw < 70:
			if out < 70 || out > 75 {
				t.Fatalf("raw=%d: expected [70,75], got %d", raw, out)
			}
		case raw <= 75:
			if out < 80 || out > 85 {
				t.Fatalf("raw=%d: expected [80,85], got %d", raw, out)
			}
		case raw < 94:
			if out < raw+1 || out > min(100, raw+6) {
				t.Fatalf("raw=%d: expected [%d,%d], got %d", raw, raw+1, min(100, raw+6), out)
			}
		default:
			if out != raw {
				t.Fatalf("raw=%d: expected unchanged, got %d", raw, out)
			}
		}
	}
}

func TestNormalizeScoreBoundaries(t *testing.T) {
	n := New(StaticFlag(true), WithRand(seeded()))

	tests := []struct {
		raw    int
		lo, hi int
	}{
		{raw: 0, lo: 70, hi: 75},
		{raw: 69, lo: 70, hi: 75},
		{raw: 70, lo: 80, hi: 85},
		{raw: 75, lo: 80, hi: 85},
		{raw: 76, lo: 77, hi: 82},
		{raw: 93, lo: 94, hi: 99},
		{raw: 94, lo: 94, hi: 94},
		{raw: 100, lo: 100, hi: 100},
	}
	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			got := n.NormalizeScore(tt.raw)
			if got < tt.lo || got > tt.hi {
				t.Fatalf("NormalizeScore(%d) = %d, want [%d,%d]", tt.raw, got, tt.lo, tt.hi)
			}
		}
	}
}

func TestNormalizeScoreConcreteScenario(t *testing.T) {
	n := New(StaticFlag(true))

	seen62 := map[int]bool{}
	seen82 := map[int]bool{}
	for i := 0; i < 2000; i++ {
		seen62[n.NormalizeScore(62)] = true
		seen82[n.NormalizeScore(82)] = true
		if got := n.NormalizeScore(97); got != 97 {
			t.Fatalf("NormalizeScore(97) = %d", got)
		}
	}
	for v := range seen62 {
		if v < 70 || v > 75 {
			t.Fatalf("62 produced %d", v)
		}
	}
	for v := range seen82 {
		if v < 83 || v > 88 {
			t.Fatalf("82 produced %d", v)
		}
	}
	if len(seen62) != 6 || len(seen82) != 6 {
		t.Fatalf("expected every value of each band to appear, got %d and %d", len(seen62), len(seen82))
	}
}

func TestNormalizeScoreFlagBypass(t *testing.T) {
	flag := NewToggleFlag(false)
	n := New(flag, WithRand(seeded()))

	for raw := 0; raw <= 100; raw++ {
		if got := n.NormalizeScore(raw); got != raw {
			t.Fatalf("disabled: NormalizeScore(%d) = %d", raw, got)
		}
	}

	flag.Set(true)
	if got := n.NormalizeScore(10); got < 70 {
		t.Fatalf("expected boosting after toggle, got %d", got)
	}
	flag.Set(false)
	if got := n.NormalizeScore(10); got != 10 {
		t.Fatalf("expected identity after toggling back, got %d", got)
	}
}

func TestNormalizeScoreClampsOutOfRange(t *testing.T) {
	n := New(StaticFlag(true))
	if got := n.NormalizeScore(150); got != 100 {
		t.Fatalf("expected 150 to clamp to 100, got %d", got)
	}
	if got := n.NormalizeScore(-5); got < 70 || got > 75 {
		t.Fatalf("expected negative raw to land in low band, got %d", got)
	}
	if got := New(nil).NormalizeScore(101); got != 100 {
		t.Fatalf("expected clamp with nil flag, got %d", got)
	}
}

func TestNormalizeAllPreservesShape(t *testing.T) {
	n := New(StaticFlag(true), WithRand(seeded()))
	in := []Metric{
		{Title: "Acne", Score: 50},
		{Title: "Pores", Score: 97, Locked: false},
		{Title: "Hydration", Score: 0, Locked: true},
	}

	out := n.NormalizeAll(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d metrics, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Title != in[i].Title || out[i].Locked != in[i].Locked {
			t.Fatalf("metric %d changed non-score fields: %+v -> %+v", i, in[i], out[i])
		}
	}
	if in[0].Score != 50 {
		t.Fatalf("input mutated: %+v", in[0])
	}
	if out[1].Score != 97 {
		t.Fatalf("expected 97 unchanged, got %d", out[1].Score)
	}
}

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		severity float64
		want     int
	}{
		{severity: 0, want: 100},
		{severity: 1, want: 0},
		{severity: 0.38, want: 62},
		{severity: 0.18, want: 82},
		{severity: 0.004, want: 100},
		{severity: -0.2, want: 100},
		{severity: 1.7, want: 0},
	}
	for _, tt := range tests {
		if got := DisplayScore(tt.severity); got != tt.want {
			t.Fatalf("DisplayScore(%v) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

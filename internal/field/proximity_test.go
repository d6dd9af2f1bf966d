package field

import (
	"math"
	"testing"
)

func TestEdgeOpacityMonotone(t *testing.T) {
	for _, d := range []Device{Mobile, Desktop} {
		for _, th := range []Theme{ThemeLight, ThemeDark} {
			maxDist := ConnectDistance(d)
			prev := math.Inf(1)
			for dist := 0.0; dist < maxDist; dist += 0.5 {
				op, ok := EdgeOpacity(dist, d, th)
				if !ok {
					t.Fatalf("%s/%s: expected edge at %f", d, th, dist)
				}
				if op >= prev {
					t.Fatalf("%s/%s: opacity not decreasing at %f", d, th, dist)
				}
				prev = op
			}
			if op, _ := EdgeOpacity(0, d, th); op != ConnectionOpacity(d, th) {
				t.Errorf("%s/%s: expected max opacity at 0, got %f", d, th, op)
			}
			if op, ok := EdgeOpacity(maxDist, d, th); ok || op != 0 {
				t.Errorf("%s/%s: expected no edge at max distance, got %f %v", d, th, op, ok)
			}
			if _, ok := EdgeOpacity(maxDist+1, d, th); ok {
				t.Errorf("%s/%s: expected no edge beyond max distance", d, th)
			}
		}
	}
}

func TestConnect(t *testing.T) {
	ps := []Particle{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 0, Y: 149},
		{X: 500, Y: 500},
	}
	rec := &recorder{}
	n := Connect(rec, ps, Desktop, ThemeDark, DefaultPalette())

	// (0,1) d=100, (0,2) d=149, (1,2) d~179.
	if n != 2 {
		t.Fatalf("expected 2 edges, got %d", n)
	}
	if rec.count("line") != 2 {
		t.Errorf("expected 2 lines drawn, got %d", rec.count("line"))
	}
	first := rec.calls[0]
	if first.width != 0.4 {
		t.Errorf("expected dark line width 0.4, got %f", first.width)
	}
	if first.color.A <= rec.calls[1].color.A {
		t.Errorf("expected the closer pair to be more opaque")
	}
}

func TestConnectMobileShorterReach(t *testing.T) {
	ps := []Particle{{X: 0, Y: 0}, {X: 130, Y: 0}}
	if n := Connect(&recorder{}, ps, Desktop, ThemeLight, DefaultPalette()); n != 1 {
		t.Errorf("desktop: expected 1 edge, got %d", n)
	}
	if n := Connect(&recorder{}, ps, Mobile, ThemeLight, DefaultPalette()); n != 0 {
		t.Errorf("mobile: expected 0 edges, got %d", n)
	}
}

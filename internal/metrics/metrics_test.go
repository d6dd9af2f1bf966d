package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/sim"
)

func frame(ps ...field.Particle) sim.Frame {
	return sim.Frame{Width: 100, Height: 100, Particles: ps}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	m.Observe(frame(
		field.Particle{Size: 2, VX: 3, VY: 4, Elasticity: 0.9},
		field.Particle{Size: 1, Elasticity: 0.9},
	))

	// (0.5*4*25 + 0) / 2
	if math.Abs(m.Value()-25) > 1e-9 {
		t.Errorf("expected energy 25, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 || len(m.Series()) != 0 {
		t.Error("expected empty series after reset")
	}
}

func TestEmptyFrame(t *testing.T) {
	for _, m := range Default() {
		m.Observe(frame())
		if v := m.Value(); v != 0 || math.IsNaN(v) {
			t.Errorf("%s: expected 0 for an empty population, got %f", m.Name(), v)
		}
	}
}

func TestStability(t *testing.T) {
	s := NewStability()
	if s.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", s.Value())
	}
	s.Observe(frame(field.Particle{X: 50, Y: 50, Elasticity: 0.9}))
	s.Observe(frame(field.Particle{X: 150, Y: 50, Elasticity: 0.9}))
	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestPointerReach(t *testing.T) {
	f := frame(
		field.Particle{X: 10, Y: 10},
		field.Particle{X: 90, Y: 90},
		field.Particle{X: 300, Y: 300},
		field.Particle{X: 0, Y: 170},
	)
	r := NewPointerReach()
	r.Observe(f)
	f.Pointer = field.Pointer{X: 0, Y: 0, Present: true}
	r.Observe(f)

	got := r.Series()
	if got[0] != 0 {
		t.Errorf("expected 0 without pointer, got %f", got[0])
	}
	if got[1] != 0.75 {
		t.Errorf("expected 0.75, got %f", got[1])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{5, 1, 4, 2, 3})
	if s.N != 5 || s.Mean != 3 || s.Min != 1 || s.Max != 5 || s.P50 != 3 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("expected stddev %f, got %f", math.Sqrt(2.5), s.StdDev)
	}
	if (Summarize(nil) != Summary{}) {
		t.Error("expected zero summary for no values")
	}
}

func TestRecorderColumns(t *testing.T) {
	rec := &Recorder{}
	rec.OnFrame(sim.Frame{Index: 0, Edges: 3, Particles: []field.Particle{{VX: 3, VY: 4}}})
	rec.OnFrame(sim.Frame{Index: 1, Edges: 5})

	if got := Column(rec.Rows, "edges"); len(got) != 2 || got[1] != 5 {
		t.Errorf("unexpected edges column %v", got)
	}
	if got := Column(rec.Rows, "mean_speed"); got[0] != 5 {
		t.Errorf("expected speed 5, got %v", got)
	}
	if Column(rec.Rows, "bogus") != nil {
		t.Error("expected nil for unknown column")
	}
}

func TestPowerSpectrum(t *testing.T) {
	const fps = 60.0
	values := make([]float64, 120)
	for i := range values {
		values[i] = 40 + 5*math.Sin(2*math.Pi*2*float64(i)/fps)
	}

	s := PowerSpectrum(values, fps)
	if len(s.Freqs) != 60 {
		t.Fatalf("expected 60 bins, got %d", len(s.Freqs))
	}
	if s.Power[0] > 1e-9 {
		t.Errorf("mean should be removed, bin 0 = %g", s.Power[0])
	}
	freq, _, ok := s.Dominant()
	if !ok || math.Abs(freq-2) > 1e-9 {
		t.Errorf("expected dominant 2 Hz, got %g", freq)
	}
}

func TestPowerSpectrumDegenerate(t *testing.T) {
	if s := PowerSpectrum([]float64{1}, 60); len(s.Power) != 0 {
		t.Error("single sample should give an empty spectrum")
	}
	flat := PowerSpectrum([]float64{3, 3, 3, 3}, 60)
	if _, _, ok := flat.Dominant(); ok {
		t.Error("flat series has no dominant frequency")
	}
}

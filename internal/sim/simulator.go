package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/neuralbg/internal/field"
)

// Simulator drives a controller bound to a headless host frame by frame.
type Simulator struct {
	host      *Headless
	ctrl      *field.Controller
	metrics   []Metric
	observers []Observer
	frame     int
	buf       []field.Particle
}

func New(host *Headless, ctrl *field.Controller) *Simulator {
	return &Simulator{
		host:      host,
		ctrl:      ctrl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances cfg.Frames frames at cfg.FPS. Frame times continue across
// calls so pulses stay continuous between scenario steps.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		t := float64(s.frame) / float64(cfg.FPS)
		if !s.host.RunFrame(t) {
			break
		}
		s.frame++
		result.Frames++

		f := s.snapshot(t)
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}

		if cfg.ValidateState {
			if err := s.ctrl.Check(); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("frame %d: %w", f.Index, err))
				break
			}
		}
	}
	result.Elapsed = time.Since(start)

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) snapshot(t float64) Frame {
	w, h := s.ctrl.Size()
	s.buf = s.ctrl.AppendParticles(s.buf[:0])
	return Frame{
		Index:     s.frame - 1,
		Time:      t,
		Width:     w,
		Height:    h,
		Device:    s.ctrl.Device(),
		Theme:     s.ctrl.Theme(),
		Edges:     s.ctrl.Edges(),
		Pointer:   s.ctrl.Pointer(),
		Particles: s.buf,
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	return nil
}

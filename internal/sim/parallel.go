package sim

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/neuralbg/internal/field"
)

// Ensemble runs independent headless fields of the same viewport, one per
// seed. Each field lives on its own goroutine; nothing is shared.
type Ensemble struct {
	Width, Height float64
	Theme         field.Theme
	// Pointer, when present, is parked before the first frame.
	Pointer field.Pointer
	// Metrics builds a fresh metric set for each run.
	Metrics func() []Metric
	// Workers bounds concurrency; zero means GOMAXPROCS.
	Workers int
}

type EnsembleRun struct {
	Seed      int64
	Particles int
	Result    *Result
}

func (e *Ensemble) Run(ctx context.Context, seeds []int64, cfg Config) ([]EnsembleRun, error) {
	runs := make([]EnsembleRun, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			host := NewHeadless(e.Width, e.Height, e.Theme)
			ctrl := field.NewController(host, field.WithRand(rand.New(rand.NewSource(seed))))
			ctrl.Initialize(&Discard{})
			defer ctrl.Destroy()
			if e.Pointer.Present {
				host.MovePointer(e.Pointer.X, e.Pointer.Y)
			}

			sim := New(host, ctrl)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					sim.AddMetric(m)
				}
			}

			res, err := sim.Run(ctx, cfg)
			if err != nil {
				return err
			}
			runs[i] = EnsembleRun{Seed: seed, Particles: len(ctrl.Particles()), Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/metrics"
	"github.com/san-kum/neuralbg/internal/sim"
)

// Scenario is a scripted sequence of viewport, pointer and theme changes
// played against a headless field.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Viewport    *Size          `yaml:"viewport"`
	Theme       string         `yaml:"theme"`
	Seed        int64          `yaml:"seed"`
	FPS         int            `yaml:"fps"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScenarioStep applies its changes in field order (viewport, theme,
// pointer) and then runs Frames frames.
type ScenarioStep struct {
	Name     string    `yaml:"name"`
	Frames   int       `yaml:"frames"`
	Preset   string    `yaml:"preset"`
	Viewport *Size     `yaml:"viewport"`
	Theme    string    `yaml:"theme"`
	Pointer  *Position `yaml:"pointer"`
}

type StepResult struct {
	Index     int
	Name      string
	Width     float64
	Height    float64
	Device    field.Device
	Theme     field.Theme
	Frames    int
	Summaries map[string]metrics.Summary
	Errors    []error
}

type Report struct {
	Scenario string
	Seed     int64
	Steps    []StepResult
	Rows     []metrics.Row
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	if _, err := resolveSize(s.Preset, s.Viewport); err != nil {
		return err
	}
	if err := checkTheme(s.Theme); err != nil {
		return err
	}
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("step %d: frames must be positive, got %d", i+1, step.Frames)
		}
		if _, err := resolveSize(step.Preset, step.Viewport); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := checkTheme(step.Theme); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func checkTheme(t string) error {
	if t == "" || t == string(field.ThemeDark) || t == string(field.ThemeLight) {
		return nil
	}
	return fmt.Errorf("unknown theme %q", t)
}

// resolveSize returns nil when neither a preset nor a size is given.
func resolveSize(preset string, size *Size) (*Size, error) {
	if preset != "" && size != nil {
		return nil, fmt.Errorf("both preset %q and viewport given", preset)
	}
	if preset != "" {
		vp := config.GetPreset(preset)
		if vp == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return &Size{Width: vp.Width, Height: vp.Height}, nil
	}
	if size != nil && (size.Width < 0 || size.Height < 0) {
		return nil, fmt.Errorf("negative viewport %gx%g", size.Width, size.Height)
	}
	return size, nil
}

// RunScenario executes all steps against one controller. Frame time and
// pointer state carry over between steps.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	size, _ := resolveSize(scenario.Preset, scenario.Viewport)
	if size == nil {
		desktop := config.GetPreset("desktop")
		size = &Size{Width: desktop.Width, Height: desktop.Height}
	}
	seed := scenario.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := scenario.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	host := sim.NewHeadless(size.Width, size.Height, field.ParseTheme(scenario.Theme))
	ctrl := field.NewController(host,
		field.WithRand(rand.New(rand.NewSource(seed))),
		field.WithLogger(logger))
	ctrl.Initialize(&sim.Discard{})
	defer ctrl.Destroy()

	runner := sim.New(host, ctrl)
	series := metrics.Default()
	for _, m := range series {
		runner.AddMetric(m)
	}
	recorder := &metrics.Recorder{}
	runner.AddObserver(recorder)

	report := &Report{Scenario: scenario.Name, Seed: seed}
	for i, step := range scenario.Steps {
		if next, _ := resolveSize(step.Preset, step.Viewport); next != nil {
			host.SetViewport(next.Width, next.Height)
		}
		if step.Theme != "" {
			host.SetTheme(field.ParseTheme(step.Theme))
			host.DispatchResize()
		}
		if step.Pointer != nil {
			host.MovePointer(step.Pointer.X, step.Pointer.Y)
		}

		logger.Info("scenario step",
			slog.Int("step", i+1),
			slog.Int("of", len(scenario.Steps)),
			slog.String("name", step.Name))

		res, err := runner.Run(ctx, sim.Config{Frames: step.Frames, FPS: fps, ValidateState: true})
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}

		w, h := ctrl.Size()
		sr := StepResult{
			Index:     i + 1,
			Name:      step.Name,
			Width:     w,
			Height:    h,
			Device:    ctrl.Device(),
			Theme:     ctrl.Theme(),
			Frames:    res.Frames,
			Summaries: make(map[string]metrics.Summary, len(series)),
			Errors:    res.Errors,
		}
		for _, m := range series {
			sr.Summaries[m.Name()] = metrics.Summarize(m.Series())
		}
		report.Steps = append(report.Steps, sr)
	}
	report.Rows = recorder.Rows
	return report, nil
}

// TrialConfig describes a batch of independently seeded runs.
type TrialConfig struct {
	Width     float64
	Height    float64
	Frames    int
	FPS       int
	NumTrials int
	Seed      int64
	Workers   int
	// Pointer, when set, parks the pointer at this position for every trial.
	Pointer *Position
}

type TrialResult struct {
	TrialID   int
	Seed      int64
	Particles int
	MeanEdges float64
	Stable    bool
}

// RunTrials runs the same viewport under NumTrials derived seeds, in
// parallel, and checks that every population stays valid.
func RunTrials(ctx context.Context, cfg *TrialConfig) ([]TrialResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(base))
	seeds := make([]int64, cfg.NumTrials)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	ens := &sim.Ensemble{
		Width:  cfg.Width,
		Height: cfg.Height,
		Theme:  field.ThemeDark,
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewEdges()}
		},
		Workers: cfg.Workers,
	}
	if cfg.Pointer != nil {
		ens.Pointer = field.Pointer{X: cfg.Pointer.X, Y: cfg.Pointer.Y, Present: true}
	}

	runs, err := ens.Run(ctx, seeds, sim.Config{Frames: cfg.Frames, FPS: cfg.FPS, ValidateState: true})
	if err != nil {
		return nil, err
	}

	results := make([]TrialResult, 0, len(runs))
	for trial, r := range runs {
		results = append(results, TrialResult{
			TrialID:   trial,
			Seed:      r.Seed,
			Particles: r.Particles,
			MeanEdges: r.Result.Metrics["edges"],
			Stable:    len(r.Result.Errors) == 0,
		})
	}
	return results, nil
}

// TrialStats counts stable and unstable trials.
func TrialStats(results []TrialResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/neuralbg/internal/config"
	"github.com/san-kum/neuralbg/internal/field"
)

// loadConfig reads the config file and applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.FPS = fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the text logger. Interactive terminal sessions only log
// to --log-file, since stderr shares the screen with the field.
func newLogger(quiet bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f.Close
	case quiet:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func resolveSeed(s int64) int64 {
	if s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

func newRand(s int64) *rand.Rand {
	return rand.New(rand.NewSource(s))
}

// viewportSize returns the preset or --width/--height size and a label for
// run records.
func viewportSize() (float64, float64, string, error) {
	if preset != "" {
		vp := config.GetPreset(preset)
		if vp == nil {
			return 0, 0, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return vp.Width, vp.Height, vp.Name, nil
	}
	if width <= 0 || height <= 0 {
		return 0, 0, "", fmt.Errorf("viewport must be positive, got %gx%g", width, height)
	}
	return width, height, field.DeviceFor(width).String(), nil
}

// pointerFlag reports the parked pointer position if either flag was set.
func pointerFlag(cmd *cobra.Command) (float64, float64, bool) {
	if cmd.Flags().Changed("pointer-x") || cmd.Flags().Changed("pointer-y") {
		return pointerX, pointerY, true
	}
	return 0, 0, false
}

// themeSaver persists theme toggles to the config file.
func themeSaver(cfg *config.Config) func(field.Theme) error {
	return func(t field.Theme) error {
		cfg.Theme = string(t)
		return config.Save(configFile, cfg)
	}
}

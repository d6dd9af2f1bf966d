package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/san-kum/neuralbg/internal/gui"
	"github.com/san-kum/neuralbg/internal/screen"
	"github.com/san-kum/neuralbg/internal/viz"
)

// runBackend opens an interactive host. An empty backend uses the config.
func runBackend(cmd *cobra.Command, backend string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if backend == "" {
		backend = cfg.Backend
	}

	logger, closeLog, err := newLogger(backend == "tui")
	if err != nil {
		return err
	}
	defer closeLog()

	s := resolveSeed(cfg.Seed)
	logger.Info("starting field",
		slog.String("backend", backend),
		slog.String("theme", cfg.Theme),
		slog.Int64("seed", s))

	switch backend {
	case "tui":
		return viz.Run(viz.Options{
			Scale:   cfg.TUI.Scale,
			FPS:     cfg.FPS,
			Theme:   cfg.FieldTheme(),
			Rand:    newRand(s),
			OnTheme: themeSaver(cfg),
			Logger:  logger,
		})
	case "gui":
		gui.Run(gui.Options{
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Title:   cfg.Window.Title,
			FPS:     cfg.FPS,
			Theme:   cfg.FieldTheme(),
			Rand:    newRand(s),
			OnTheme: themeSaver(cfg),
			Logger:  logger,
		})
		return nil
	case "screen":
		return screen.Run(screen.Options{
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Title:   cfg.Window.Title,
			FPS:     cfg.FPS,
			Theme:   cfg.FieldTheme(),
			Rand:    newRand(s),
			OnTheme: themeSaver(cfg),
			Logger:  logger,
		})
	default:
		return fmt.Errorf("unknown backend: %s", backend)
	}
}

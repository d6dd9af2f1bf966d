package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "dark" {
		t.Errorf("expected theme dark, got %s", cfg.Theme)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected fps %d, got %d", DefaultFPS, cfg.FPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "tui" {
		t.Errorf("expected defaults, got backend %s", cfg.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "theme: light\nfps: 30\nwindow:\n  width: 800\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Theme != "light" || cfg.FPS != 30 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != DefaultHeight {
		t.Errorf("expected 800x%d, got %dx%d", DefaultHeight, cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"theme", "theme: sepia\n"},
		{"backend", "backend: vga\n"},
		{"fps", "fps: 0\n"},
		{"scale", "tui:\n  scale: -1\n"},
		{"yaml", "theme: [\n"},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), tt.name+".yaml")
		if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "light"
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Theme != "light" || got.Seed != 7 {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	vp := GetPreset("desktop")
	if vp == nil {
		t.Fatal("expected preset, got nil")
	}
	if vp.Width != 1920 || vp.Height != 1080 {
		t.Errorf("expected 1920x1080, got %gx%g", vp.Width, vp.Height)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if vp := GetPreset("nonexistent"); vp != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "mobile" || presets[len(presets)-1] != "ultrawide" {
		t.Errorf("expected width ordering, got %v", presets)
	}
}

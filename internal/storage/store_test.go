package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/neuralbg/internal/metrics"
)

func sampleRows() []metrics.Row {
	return []metrics.Row{
		{Frame: 0, Time: 0, Population: 82, Edges: 40, MeanSpeed: 0.12, Energy: 0.3},
		{Frame: 1, Time: 1.0 / 60, Population: 82, Edges: 41, MeanSpeed: 0.11, Energy: 0.28},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Label:   "desktop",
		Seed:    42,
		Width:   1920,
		Height:  1080,
		Device:  "desktop",
		Theme:   "dark",
		Frames:  2,
		FPS:     60,
		Metrics: map[string]float64{"edges": 40.5},
	}
	runID, err := st.Save(meta, sampleRows())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != runID || got.Seed != 42 || got.Label != "desktop" {
		t.Errorf("unexpected metadata %+v", got)
	}
	if got.Metrics["edges"] != 40.5 {
		t.Errorf("expected edges 40.5, got %f", got.Metrics["edges"])
	}

	rows, err := st.LoadRows(runID)
	if err != nil {
		t.Fatalf("load rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Edges != 41 || rows[1].Population != 82 {
		t.Errorf("unexpected row %+v", rows[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreEmptyRows(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(RunMetadata{Label: "empty"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	rows, err := st.LoadRows(runID)
	if err != nil {
		t.Fatalf("load rows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, RunMetadata{ID: "x"}, sampleRows()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Run.ID != "x" || len(got.Frames) != 2 {
		t.Errorf("unexpected export %+v", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, sampleRows()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame,time,population,edges,mean_speed,energy,pointer_reach" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

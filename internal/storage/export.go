package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/neuralbg/internal/metrics"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []metrics.Row `json:"frames"`
}

// ExportJSON writes a run record as a single JSON document.
func ExportJSON(path string, meta RunMetadata, rows []metrics.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, meta, rows)
}

func WriteJSON(w io.Writer, meta RunMetadata, rows []metrics.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Frames: rows})
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []metrics.Row) error {
	return gocsv.Marshal(&rows, w)
}

package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/chaoslanding/internal/sim"
)

type ExportData struct {
	RunMetadata
	Trace []sim.Frame `json:"trace"`
}

// ExportJSON writes the run summary and full frame trace to path.
func ExportJSON(path, preset string, cfg sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, preset, cfg, result)
}

func WriteJSON(w io.Writer, preset string, cfg sim.Config, result *sim.Result) error {
	data := ExportData{
		RunMetadata: metadataFor(preset, cfg, result),
		Trace:       result.Frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export writes a stored run in the same shape as WriteJSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trace: frames})
}

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/chaoslanding/internal/sim"
)

func sampleRun(t *testing.T) (sim.Config, *sim.Result) {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Frames = 240
	cfg.Seed = 42
	result, err := sim.New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	result.Metrics["energy"] = 1.5
	return cfg, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := sampleRun(t)
	runID, err := st.Save("classic", cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "classic" {
		t.Errorf("expected preset 'classic', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}
	if meta.Frames != 240 || meta.SuperChaosFrame != result.SuperChaosFrame {
		t.Errorf("unexpected metadata %+v", meta)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != len(result.Frames) {
		t.Fatalf("expected %d frames, got %d", len(result.Frames), len(frames))
	}
	last, want := frames[len(frames)-1], result.Frames[len(result.Frames)-1]
	if last.Index != want.Index || last.Score != want.Score || last.Items != want.Items {
		t.Errorf("frame mismatch: %+v vs %+v", last, want)
	}
	if d := last.Time - want.Time; d > time.Microsecond || d < -time.Microsecond {
		t.Errorf("time mismatch: %s vs %s", last.Time, want.Time)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, result := sampleRun(t)
	stamps := []time.Time{
		time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	ids := make([]string, len(stamps))
	for i, ts := range stamps {
		id, err := st.Save("frenzy", cfg, result)
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		setTimestamp(t, st, id, ts)
		ids[i] = id
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	want := []string{ids[1], ids[0], ids[2]}
	for i, r := range runs {
		if r.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], r.ID)
		}
	}
}

// setTimestamp rewrites a saved run's timestamp.
func setTimestamp(t *testing.T, st *Store, runID string, ts time.Time) {
	t.Helper()
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	meta.Timestamp = ts
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(st.baseDir, runID, metadataFile), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := sampleRun(t)
	runID, err := st.Save("calm", cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "frames.csv")); os.IsNotExist(err) {
		t.Error("frames.csv not created")
	}
}

func TestWriteJSON(t *testing.T) {
	cfg, result := sampleRun(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, "classic", cfg, result); err != nil {
		t.Fatal(err)
	}

	var back ExportData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if back.Preset != "classic" || len(back.Trace) != len(result.Frames) {
		t.Errorf("unexpected export %q with %d frames", back.Preset, len(back.Trace))
	}
	if back.FrameTimeMs < 16 || back.FrameTimeMs > 17 {
		t.Errorf("unexpected frame time %f", back.FrameTimeMs)
	}
}

func TestStoreExport(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	cfg, result := sampleRun(t)
	runID, err := st.Save("calm", cfg, result)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.Export(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var back ExportData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if back.ID != runID || back.Preset != "calm" || len(back.Trace) != len(result.Frames) {
		t.Errorf("unexpected export %s/%s with %d frames", back.ID, back.Preset, len(back.Trace))
	}

	if err := st.Export(&buf, "missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

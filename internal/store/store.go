package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/chaoslanding/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "time_ms", "score", "misses", "items", "particles", "paddle_x", "energy", "super_chaos"}

// Store keeps headless runs on disk, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Preset          string             `json:"preset"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Frames          int                `json:"frames"`
	FrameTimeMs     float64            `json:"frame_time_ms"`
	FinalScore      int                `json:"final_score"`
	Catches         int                `json:"catches"`
	Misses          int                `json:"misses"`
	CatchRate       float64            `json:"catch_rate"`
	SuperChaosFrame int                `json:"super_chaos_frame"`
	GameOverFrame   int                `json:"game_over_frame"`
	Metrics         map[string]float64 `json:"metrics"`
}

func metadataFor(preset string, cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Preset:          preset,
		Timestamp:       time.Now(),
		Seed:            result.Seed,
		Frames:          len(result.Frames),
		FrameTimeMs:     float64(cfg.FrameTime) / float64(time.Millisecond),
		FinalScore:      result.FinalScore,
		Catches:         result.Catches,
		Misses:          result.Misses,
		CatchRate:       result.CatchRate,
		SuperChaosFrame: result.SuperChaosFrame,
		GameOverFrame:   result.GameOverFrame,
		Metrics:         result.Metrics,
	}
}

// Save writes the run's metadata and per-frame trace and returns its id.
func (s *Store) Save(preset string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d_%d", preset, result.Seed, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := metadataFor(preset, cfg, result)
	meta.ID = runID

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		if err := w.Write(frameRow(f)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func frameRow(f sim.Frame) []string {
	return []string{
		strconv.Itoa(f.Index),
		strconv.FormatFloat(float64(f.Time)/float64(time.Millisecond), 'f', 3, 64),
		strconv.Itoa(f.Score),
		strconv.Itoa(f.Misses),
		strconv.Itoa(f.Items),
		strconv.Itoa(f.Particles),
		strconv.FormatFloat(f.PaddleX, 'f', 3, 64),
		strconv.FormatFloat(f.Energy, 'f', 6, 64),
		strconv.FormatBool(f.SuperChaos),
	}
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads a run's per-frame trace back.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		f, err := parseFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(rec []string) (sim.Frame, error) {
	var f sim.Frame
	if len(rec) != len(frameHeader) {
		return f, fmt.Errorf("expected %d fields, got %d", len(frameHeader), len(rec))
	}

	ints := make([]int, 0, 5)
	for _, i := range []int{0, 2, 3, 4, 5} {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return f, err
		}
		ints = append(ints, v)
	}
	floats := make([]float64, 0, 3)
	for _, i := range []int{1, 6, 7} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return f, err
		}
		floats = append(floats, v)
	}
	super, err := strconv.ParseBool(rec[8])
	if err != nil {
		return f, err
	}

	f.Index, f.Score, f.Misses, f.Items, f.Particles = ints[0], ints[1], ints[2], ints[3], ints[4]
	f.Time = time.Duration(floats[0] * float64(time.Millisecond))
	f.PaddleX = floats[1]
	f.Energy = floats[2]
	f.SuperChaos = super
	return f, nil
}

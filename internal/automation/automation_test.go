package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/chaoslanding/internal/control"
	"github.com/san-kum/chaoslanding/internal/sim"
	"github.com/san-kum/chaoslanding/internal/store"
)

const scenarioYAML = `name: smoke
description: two quick runs
steps:
  - preset: calm
    frames: 300
    seed: 3
    save: true
  - preset: arcade
    frames: 600
    pilot:
      name: pid
    params:
      kp: 0.5
      spawn_interval_ms: 500
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Pilot.Name != "pid" || sc.Steps[1].Params["kp"] != 0.5 {
		t.Errorf("unexpected second step %+v", sc.Steps[1])
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
}

func TestStepConfig(t *testing.T) {
	cfg, pilot, err := StepConfig(ScenarioStep{
		Preset: "arcade",
		Pilot:  control.PilotSpec{Name: "pid"},
		Params: map[string]float64{"kp": 0.5, "spawn_interval_ms": 500},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.MissLimit != 5 {
		t.Errorf("expected arcade miss limit 5, got %d", cfg.Game.MissLimit)
	}
	if cfg.Game.SpawnInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms spawn, got %v", cfg.Game.SpawnInterval)
	}
	if pilot.Gains.Kp != 0.5 || pilot.Gains.MaxSpeed != control.DefaultGains.MaxSpeed {
		t.Errorf("expected default gains with kp override, got %+v", pilot.Gains)
	}

	if _, _, err := StepConfig(ScenarioStep{Preset: "nope"}); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, _, err := StepConfig(ScenarioStep{Params: map[string]float64{"gravity": 1}}); err == nil {
		t.Error("expected unknown param error")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	st := store.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, st, func() []sim.Metric { return nil }, nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("expected only the first step saved, got %q and %q", results[0].RunID, results[1].RunID)
	}
	if results[0].Result.Seed != 3 {
		t.Errorf("expected seed 3, got %d", results[0].Result.Seed)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 || runs[0].Preset != "calm" {
		t.Errorf("expected one stored calm run, got %v (%v)", runs, err)
	}
}

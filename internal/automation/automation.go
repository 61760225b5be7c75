package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaoslanding/internal/config"
	"github.com/san-kum/chaoslanding/internal/control"
	"github.com/san-kum/chaoslanding/internal/sim"
	"github.com/san-kum/chaoslanding/internal/store"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Frames int                `yaml:"frames"`
	Seed   int64              `yaml:"seed"`
	Pilot  control.PilotSpec  `yaml:"pilot"`
	Params map[string]float64 `yaml:"params"`
	Save   bool               `yaml:"save"`
}

// StepResult pairs a finished run with where it was stored.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// ParamNames lists the keys accepted by ApplyParams.
var ParamNames = []string{
	"paddle_width", "spawn_interval_ms", "base_speed", "speed_per_point", "miss_limit",
	"bodies", "restitution", "force", "threshold",
	"pilot_speed", "kp", "ki", "kd", "max_speed",
}

// ApplyParams overrides run and pilot settings by name.
func ApplyParams(cfg *sim.Config, pilot *control.PilotSpec, params map[string]float64) error {
	for k, v := range params {
		switch k {
		case "paddle_width":
			cfg.Game.PaddleWidth = v
		case "spawn_interval_ms":
			cfg.Game.SpawnInterval = msDuration(v)
		case "base_speed":
			cfg.Game.BaseSpeed = v
		case "speed_per_point":
			cfg.Game.SpeedPerPoint = v
		case "miss_limit":
			cfg.Game.MissLimit = int(v)
		case "bodies":
			cfg.Bodies = int(v)
		case "restitution":
			cfg.Restitution = v
		case "force":
			cfg.Force = v
		case "threshold":
			cfg.Threshold = int(v)
		case "pilot_speed":
			pilot.Speed = v
		case "kp":
			pilot.Gains.Kp = v
		case "ki":
			pilot.Gains.Ki = v
		case "kd":
			pilot.Gains.Kd = v
		case "max_speed":
			pilot.Gains.MaxSpeed = v
		default:
			return fmt.Errorf("unknown param %q", k)
		}
	}
	return nil
}

// StepConfig resolves a step into a run config and pilot.
func StepConfig(step ScenarioStep) (sim.Config, control.PilotSpec, error) {
	name := step.Preset
	if name == "" {
		name = "classic"
	}
	preset := config.GetPreset(name)
	if preset == nil {
		return sim.Config{}, control.PilotSpec{}, fmt.Errorf("unknown preset %q", name)
	}

	cfg := sim.DefaultConfig()
	cfg.FrameTime = preset.FrameTime()
	cfg.Bodies = preset.Field.Bodies
	cfg.Restitution = preset.Field.Restitution
	cfg.Force = preset.Field.Force
	cfg.Game = preset.GameRules()
	cfg.Threshold = preset.Page.SuperChaosThreshold
	if step.Frames > 0 {
		cfg.Frames = step.Frames
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}

	pilot := step.Pilot
	if pilot.Name == "pid" && pilot.Gains == (control.Gains{}) {
		pilot.Gains = control.DefaultGains
	}
	if err := ApplyParams(&cfg, &pilot, step.Params); err != nil {
		return sim.Config{}, control.PilotSpec{}, err
	}
	return cfg, pilot, nil
}

// RunScenario executes all steps in a scenario. Steps marked save are
// written to st, which may be nil when nothing is saved.
func RunScenario(ctx context.Context, scenario *Scenario, st *store.Store, metrics func() []sim.Metric, logger *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, spec, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		pilot, err := control.NewPilot(spec)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if logger != nil {
			logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "preset", step.Preset, "pilot", spec.Name)
		}

		s := sim.New(pilot)
		if metrics != nil {
			for _, m := range metrics() {
				s.AddMetric(m)
			}
		}
		result, err := s.Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save to", i+1)
			}
			preset := step.Preset
			if preset == "" {
				preset = "classic"
			}
			if sr.RunID, err = st.Save(preset, cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

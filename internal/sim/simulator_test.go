package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/chaoslanding/internal/game"
)

func shortConfig() Config {
	cfg := DefaultConfig()
	cfg.Frames = 3600
	cfg.Seed = 42
	return cfg
}

func TestSimulatorRun(t *testing.T) {
	cfg := shortConfig()
	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != cfg.Frames {
		t.Errorf("expected %d frames, got %d", cfg.Frames, len(result.Frames))
	}

	// one spawn per elapsed second over a 60s run
	if result.Spawned < 55 || result.Spawned > 60 {
		t.Errorf("expected ~59 spawns, got %d", result.Spawned)
	}

	live := result.Frames[len(result.Frames)-1].Items
	if result.Catches+result.Misses+live != result.Spawned {
		t.Errorf("items unaccounted for: %d caught + %d missed + %d live != %d spawned",
			result.Catches, result.Misses, live, result.Spawned)
	}

	if result.FinalScore != result.Catches {
		t.Errorf("score %d != catches %d", result.FinalScore, result.Catches)
	}
	if result.GameOverFrame != -1 {
		t.Errorf("endless run reported game over at %d", result.GameOverFrame)
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	result, err := New(nil).Run(context.Background(), shortConfig())
	if err != nil {
		t.Fatal(err)
	}
	prev := 0
	for _, f := range result.Frames {
		if f.Score < prev {
			t.Fatalf("score dropped from %d to %d at frame %d", prev, f.Score, f.Index)
		}
		prev = f.Score
	}
}

func TestChaserOutplaysIdle(t *testing.T) {
	cfg := shortConfig()

	chased, err := New(NewChaser(0)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	idle, err := New(Idle).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if chased.CatchRate < 0.8 {
		t.Errorf("expected chaser catch rate >= 0.8, got %.2f", chased.CatchRate)
	}
	if idle.CatchRate > 0.5 {
		t.Errorf("expected idle catch rate < 0.5, got %.2f", idle.CatchRate)
	}
	if chased.SuperChaosFrame < 0 {
		t.Error("expected chaser to reach super chaos")
	}

	frame := chased.Frames[chased.SuperChaosFrame]
	if frame.Score < cfg.Threshold {
		t.Errorf("super chaos at score %d, threshold %d", frame.Score, cfg.Threshold)
	}
	if chased.SuperChaosFrame > 0 && chased.Frames[chased.SuperChaosFrame-1].SuperChaos {
		t.Error("super chaos frame is not the first flagged frame")
	}
}

func TestMissLimitEndsRun(t *testing.T) {
	cfg := shortConfig()
	cfg.Game.MissLimit = 3

	result, err := New(Idle).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.GameOverFrame < 0 {
		t.Fatal("expected game over")
	}
	if len(result.Frames) != result.GameOverFrame+1 {
		t.Errorf("run continued past game over: %d frames, game over at %d",
			len(result.Frames), result.GameOverFrame)
	}
	if result.Misses != 3 {
		t.Errorf("expected 3 misses, got %d", result.Misses)
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	cfg := shortConfig()
	a, _ := New(nil).Run(context.Background(), cfg)
	b, _ := New(nil).Run(context.Background(), cfg)

	if a.FinalScore != b.FinalScore || a.Misses != b.Misses {
		t.Fatalf("same seed diverged: %d/%d vs %d/%d", a.FinalScore, a.Misses, b.FinalScore, b.Misses)
	}
	for i := range a.Frames {
		if a.Frames[i] != b.Frames[i] {
			t.Fatalf("frame %d differs", i)
		}
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(nil).Run(ctx, shortConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 0 {
		t.Errorf("expected no frames, got %d", len(result.Frames))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"zero frame time", func(c *Config) { c.FrameTime = 0 }},
		{"narrow viewport", func(c *Config) { c.Width = 50 }},
		{"no height", func(c *Config) { c.Height = 0 }},
		{"negative bodies", func(c *Config) { c.Bodies = -1 }},
		{"bad game rules", func(c *Config) { c.Game.SpawnInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(nil).Run(context.Background(), cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

type countMetric struct {
	frames int
}

func (c *countMetric) Name() string   { return "count" }
func (c *countMetric) Observe(Frame)  { c.frames++ }
func (c *countMetric) Value() float64 { return float64(c.frames) }
func (c *countMetric) Reset()         { c.frames = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(nil)
	m := &countMetric{}
	s.AddMetric(m)

	cfg := DefaultConfig()
	cfg.Frames = 100
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["count"] != 100 {
		t.Errorf("expected 100 observations, got %v", result.Metrics["count"])
	}

	// a second run starts from a reset metric
	result, _ = s.Run(context.Background(), cfg)
	if result.Metrics["count"] != 100 {
		t.Errorf("metric not reset between runs: %v", result.Metrics["count"])
	}
}

type recorder struct{ frames []Frame }

func (r *recorder) OnFrame(f Frame) { r.frames = append(r.frames, f) }

func TestObserverSeesEveryFrame(t *testing.T) {
	s := New(nil)
	rec := &recorder{}
	s.AddObserver(rec)

	cfg := DefaultConfig()
	cfg.Frames = 30
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.frames) != 30 {
		t.Fatalf("expected 30 frames, got %d", len(rec.frames))
	}
	if rec.frames[29].Time != 30*cfg.FrameTime {
		t.Errorf("unexpected final timestamp %s", rec.frames[29].Time)
	}
	if got := result.Series(func(f Frame) float64 { return float64(f.Index) }); got[29] != 29 {
		t.Errorf("series mismatch: %v", got[29])
	}
}

func TestChaserSpeedCap(t *testing.T) {
	s := game.NewSession(game.DefaultConfig(), nil, rand.New(rand.NewSource(1)))
	s.Resize(1000, 600)

	if _, ok := NewChaser(10).Steer(s); ok {
		t.Fatal("expected no target on an empty board")
	}

	s.AddItem(game.Item{X: 900, Y: 100, Speed: 2, Size: 30})
	s.AddItem(game.Item{X: 100, Y: 50, Speed: 2, Size: 30})

	x, ok := NewChaser(10).Steer(s)
	if !ok || x != 510 {
		t.Errorf("expected capped move to 510, got %v %v", x, ok)
	}

	x, _ = NewChaser(0).Steer(s)
	if x != 900 {
		t.Errorf("expected jump to lowest item at 900, got %v", x)
	}
}

func TestFrameTimeDrivesSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameTime = 500 * time.Millisecond
	cfg.Frames = 10

	result, err := New(Idle).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	// spawns need strictly more than one second since the last: every third frame
	if result.Spawned != 3 {
		t.Errorf("expected 3 spawns, got %d", result.Spawned)
	}
}

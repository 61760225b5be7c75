package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/page"
	"github.com/san-kum/chaoslanding/internal/physics"
)

// Simulator drives the icon field and the catch game without a frontend.
type Simulator struct {
	pilot     Pilot
	metrics   []Metric
	observers []Observer
	log       *log.Logger
}

func New(pilot Pilot) *Simulator {
	if pilot == nil {
		pilot = NewChaser(0)
	}
	return &Simulator{
		pilot: pilot,
		log:   log.New(io.Discard),
	}
}

func (s *Simulator) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)  { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *log.Logger) { s.log = l }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	field := physics.NewField(cfg.Bodies, cfg.Width, cfg.Height, rng)
	field.SetRestitution(cfg.Restitution)
	field.Force = cfg.Force

	host := page.New(nil, cfg.Threshold, s.log)
	session := game.NewSession(cfg.Game, nil, rng)
	session.OnScore(host.HandleScore)
	session.Resize(cfg.Width, cfg.Height)
	session.Start(0)

	result := &Result{
		Seed:            cfg.Seed,
		Frames:          make([]Frame, 0, cfg.Frames),
		Metrics:         make(map[string]float64),
		SuperChaosFrame: -1,
		GameOverFrame:   -1,
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	dt := cfg.FrameTime.Seconds()
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		ts := time.Duration(i+1) * cfg.FrameTime
		if x, ok := s.pilot.Steer(session); ok {
			session.MovePointer(x)
		}

		field.Step()
		ev := session.Step(ts)
		host.Advance(dt)

		result.Spawned += ev.Spawned
		result.Catches += ev.Caught
		result.Misses += ev.Missed

		f := Frame{
			Index:      i,
			Time:       ts,
			Score:      session.Score(),
			Misses:     session.Misses(),
			Items:      len(session.Items()),
			Particles:  len(session.Particles()),
			PaddleX:    session.PaddleX(),
			Energy:     field.KineticEnergy(),
			SuperChaos: host.SuperChaos(),
		}
		result.Frames = append(result.Frames, f)

		if f.SuperChaos && result.SuperChaosFrame < 0 {
			result.SuperChaosFrame = i
			s.log.Debug("super chaos reached", "seed", cfg.Seed, "frame", i)
		}
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, o := range s.observers {
			o.OnFrame(f)
		}

		if session.State() == game.GameOver {
			result.GameOverFrame = i
			s.log.Debug("game over", "seed", cfg.Seed, "frame", i, "score", f.Score)
			break
		}
	}

	result.FinalScore = session.Score()
	if resolved := result.Catches + result.Misses; resolved > 0 {
		result.CatchRate = float64(result.Catches) / float64(resolved)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	switch {
	case cfg.Frames <= 0:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	case cfg.FrameTime <= 0:
		return fmt.Errorf("%w: frame time must be positive, got %s", ErrInvalidConfig, cfg.FrameTime)
	case cfg.Width < cfg.Game.PaddleWidth || cfg.Height <= 0:
		return fmt.Errorf("%w: viewport %.0fx%.0f too small", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.Bodies < 0:
		return fmt.Errorf("%w: negative body count", ErrInvalidConfig)
	}
	if err := cfg.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

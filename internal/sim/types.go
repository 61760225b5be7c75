package sim

import (
	"errors"
	"time"

	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/physics"
)

var ErrInvalidConfig = errors.New("invalid run config")

// Frame is the snapshot recorded after every headless frame.
type Frame struct {
	Index      int
	Time       time.Duration
	Score      int
	Misses     int
	Items      int
	Particles  int
	PaddleX    float64
	Energy     float64
	SuperChaos bool
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// Pilot moves the paddle in place of a pointer.
type Pilot interface {
	Steer(s *game.Session) (x float64, ok bool)
}

type Config struct {
	Frames    int
	FrameTime time.Duration
	Seed      int64
	Width     float64
	Height    float64

	Bodies      int
	Restitution float64
	Force       float64

	Game      game.Config
	Threshold int
}

func DefaultConfig() Config {
	return Config{
		Frames:      3600,
		FrameTime:   time.Second / 60,
		Seed:        1,
		Width:       1280,
		Height:      720,
		Bodies:      physics.DefaultBodies,
		Restitution: physics.DefaultRestitution,
		Force:       physics.DefaultForce,
		Game:        game.DefaultConfig(),
		Threshold:   10,
	}
}

type Result struct {
	Seed   int64
	Frames []Frame

	Catches    int
	Misses     int
	Spawned    int
	CatchRate  float64
	FinalScore int

	// -1 when the run never got there.
	SuperChaosFrame int
	GameOverFrame   int

	Metrics map[string]float64
}

// Series extracts one value per recorded frame.
func (r *Result) Series(fn func(Frame) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = fn(f)
	}
	return out
}

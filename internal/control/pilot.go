package control

import (
	"fmt"
	"math"

	"github.com/san-kum/chaoslanding/internal/game"
	"github.com/san-kum/chaoslanding/internal/sim"
)

// Gains of the paddle PID loop.
type Gains struct {
	Kp, Ki, Kd float64
	// MaxSpeed caps the paddle in px per frame. Zero leaves it uncapped.
	MaxSpeed float64
}

var DefaultGains = Gains{Kp: 0.35, Ki: 0, Kd: 0.1, MaxSpeed: 18}

// PIDPilot drives the paddle toward sim.Target with a PID loop. The loop is
// reset whenever the target item changes.
type PIDPilot struct {
	gains  Gains
	pid    *PID
	target *game.Item
	frame  float64
}

func NewPIDPilot(g Gains) *PIDPilot {
	return &PIDPilot{gains: g, pid: NewPID(g.Kp, g.Ki, g.Kd, 0)}
}

func (p *PIDPilot) Steer(s *game.Session) (float64, bool) {
	p.frame++
	target := sim.Target(s)
	if target == nil {
		p.target = nil
		return 0, false
	}
	if target != p.target {
		p.target = target
		p.pid.Reset()
	}

	center := s.PaddleX() + s.Config().PaddleWidth/2
	p.pid.Target = target.X
	u := p.pid.Compute(center, p.frame)
	if p.gains.MaxSpeed > 0 {
		u = math.Max(-p.gains.MaxSpeed, math.Min(u, p.gains.MaxSpeed))
	}
	return center + u, true
}

// PilotSpec names a pilot and its tuning.
type PilotSpec struct {
	Name  string  `yaml:"name"`
	Speed float64 `yaml:"speed"`
	Gains Gains   `yaml:"gains"`
}

func PilotNames() []string { return []string{"chaser", "idle", "pid"} }

// NewPilot builds the pilot described by spec. An empty name is a chaser.
func NewPilot(spec PilotSpec) (sim.Pilot, error) {
	switch spec.Name {
	case "", "chaser":
		return sim.NewChaser(spec.Speed), nil
	case "idle":
		return sim.Idle, nil
	case "pid":
		return NewPIDPilot(spec.Gains), nil
	default:
		return nil, fmt.Errorf("unknown pilot %q", spec.Name)
	}
}

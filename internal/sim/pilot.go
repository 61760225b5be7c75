package sim

import (
	"math"

	"github.com/san-kum/chaoslanding/internal/game"
)

// Chaser follows the lowest item still above the catch band, moving at most
// Speed pixels per frame. A zero speed jumps straight to the target.
type Chaser struct {
	Speed float64
}

func NewChaser(speed float64) *Chaser {
	return &Chaser{Speed: speed}
}

// Target is the lowest item still on screen, or nil.
func Target(s *game.Session) *game.Item {
	var target *game.Item
	for _, it := range s.Items() {
		if it.Y > s.Height() {
			continue
		}
		if target == nil || it.Y > target.Y {
			target = it
		}
	}
	return target
}

func (c *Chaser) Steer(s *game.Session) (float64, bool) {
	target := Target(s)
	if target == nil {
		return 0, false
	}

	center := s.PaddleX() + s.Config().PaddleWidth/2
	// Catch tests the item's left edge against the paddle span.
	goal := target.X
	if c.Speed <= 0 {
		return goal, true
	}
	delta := goal - center
	step := math.Copysign(math.Min(math.Abs(delta), c.Speed), delta)
	return center + step, true
}

// PilotFunc adapts a plain function to Pilot.
type PilotFunc func(s *game.Session) (float64, bool)

func (f PilotFunc) Steer(s *game.Session) (float64, bool) { return f(s) }

// Idle never moves the paddle.
var Idle Pilot = PilotFunc(func(*game.Session) (float64, bool) { return 0, false })

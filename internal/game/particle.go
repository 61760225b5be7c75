package game

import (
	"math/rand"

	"github.com/san-kum/chaoslanding/internal/physics"
)

const (
	LifeDecay     = 0.05
	particleSpeed = 10.0
)

// Particle is a short-lived spark from a catch burst.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  physics.Color
}

func newParticle(x, y float64, rng *rand.Rand) *Particle {
	return &Particle{
		X:     x,
		Y:     y,
		VX:    (rng.Float64() - 0.5) * particleSpeed,
		VY:    (rng.Float64() - 0.5) * particleSpeed,
		Life:  1,
		Color: physics.SparkColors[rng.Intn(len(physics.SparkColors))],
	}
}

// Update moves the particle and burns one step of life. It reports whether the
// particle is still alive.
func (p *Particle) Update() bool {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= LifeDecay
	return p.Life > 0
}

// updateParticles filters ps in place.
func updateParticles(ps []*Particle) []*Particle {
	alive := ps[:0]
	for _, p := range ps {
		if p.Update() {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(ps); i++ {
		ps[i] = nil
	}
	return alive
}

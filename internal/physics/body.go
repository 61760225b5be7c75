package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/chaoslanding/internal/icons"
)

const (
	DefaultBodies      = 15
	DefaultRestitution = 0.9
	DefaultForce       = 2.0

	minSize       = 24.0
	sizeJitter    = 24.0
	maxSpeed      = 2.0
	maxSpin       = 2.0
	fullTurnDeg   = 360.0
	degreesToRads = math.Pi / 180
)

// Body is a floating icon. X and Y locate its top-left corner.
type Body struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	Rotation      float64 // degrees
	RotationSpeed float64 // degrees per frame
	Color         Color
	Icon          icons.ID
	Restitution   float64
}

// NewBody places a body at a random point inside width x height.
func NewBody(width, height float64, rng *rand.Rand) *Body {
	return &Body{
		X:             rng.Float64() * width,
		Y:             rng.Float64() * height,
		VX:            (rng.Float64() - 0.5) * 2 * maxSpeed,
		VY:            (rng.Float64() - 0.5) * 2 * maxSpeed,
		Size:          minSize + rng.Float64()*sizeJitter,
		Rotation:      rng.Float64() * fullTurnDeg,
		RotationSpeed: (rng.Float64() - 0.5) * 2 * maxSpin,
		Color:         BodyColors[rng.Intn(len(BodyColors))],
		Icon:          icons.Random(rng),
		Restitution:   DefaultRestitution,
	}
}

// Center returns the midpoint of the body's square.
func (b *Body) Center() (float64, float64) {
	return b.X + b.Size/2, b.Y + b.Size/2
}

// Radians returns the rotation in radians.
func (b *Body) Radians() float64 {
	return b.Rotation * degreesToRads
}

// Update advances b by one frame inside width x height and applies the
// repulsion impulse against every overlapping body in all. b must be one of
// the entries of all; it is skipped by identity.
func Update(b *Body, all []*Body, width, height, force float64) {
	b.X += b.VX
	b.Y += b.VY
	b.Rotation = math.Mod(b.Rotation+b.RotationSpeed, fullTurnDeg)
	if b.Rotation < 0 {
		b.Rotation += fullTurnDeg
	}

	maxX, maxY := width-b.Size, height-b.Size
	if b.X < 0 || b.X > maxX {
		b.VX *= -b.Restitution
		b.X = clamp(b.X, 0, maxX)
	}
	if b.Y < 0 || b.Y > maxY {
		b.VY *= -b.Restitution
		b.Y = clamp(b.Y, 0, maxY)
	}

	for _, other := range all {
		if other == b {
			continue
		}
		dx := other.X - b.X
		dy := other.Y - b.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist >= (b.Size+other.Size)/2 {
			continue
		}
		angle := math.Atan2(dy, dx)
		ix, iy := math.Cos(angle)*force, math.Sin(angle)*force
		b.VX -= ix
		b.VY -= iy
		other.VX += ix
		other.VY += iy
	}
}

// clamp matches max(lo, min(v, hi)): lo wins when the viewport is smaller
// than the body.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

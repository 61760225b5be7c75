package physics

import (
	"math/rand"
)

// Field owns the pool of bodies and the viewport they bounce in.
type Field struct {
	Bodies []*Body
	Width  float64
	Height float64
	Force  float64
	Frame  int
}

// NewField creates n bodies at random positions inside width x height.
func NewField(n int, width, height float64, rng *rand.Rand) *Field {
	bodies := make([]*Body, n)
	for i := range bodies {
		bodies[i] = NewBody(width, height, rng)
	}
	return &Field{
		Bodies: bodies,
		Width:  width,
		Height: height,
		Force:  DefaultForce,
	}
}

// SetRestitution overrides the wall bounce coefficient for every body.
func (f *Field) SetRestitution(r float64) {
	for _, b := range f.Bodies {
		b.Restitution = r
	}
}

// Resize changes the viewport. Bodies outside the new bounds are pulled back
// in on their next update.
func (f *Field) Resize(width, height float64) {
	f.Width = width
	f.Height = height
}

// Clone deep-copies the field and its bodies.
func (f *Field) Clone() *Field {
	c := *f
	c.Bodies = make([]*Body, len(f.Bodies))
	for i, b := range f.Bodies {
		body := *b
		c.Bodies[i] = &body
	}
	return &c
}

// Step advances every body by one frame, in pool order.
func (f *Field) Step() {
	for _, b := range f.Bodies {
		Update(b, f.Bodies, f.Width, f.Height, f.Force)
	}
	f.Frame++
}

// KineticEnergy is the sum of v²/2 over the pool, treating every body as unit
// mass.
func (f *Field) KineticEnergy() float64 {
	e := 0.0
	for _, b := range f.Bodies {
		e += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return e
}

package page

const springSubstep = 1.0 / 240

// Spring is a damped unit-mass spring chasing Target.
type Spring struct {
	Stiffness float64
	Damping   float64
	Value     float64
	Velocity  float64
	Target    float64
}

func NewSpring(stiffness, damping float64) *Spring {
	return &Spring{Stiffness: stiffness, Damping: damping}
}

// Advance integrates dt seconds with semi-implicit Euler in small substeps.
func (s *Spring) Advance(dt float64) {
	for dt > 0 {
		h := springSubstep
		if dt < h {
			h = dt
		}
		accel := -s.Stiffness*(s.Value-s.Target) - s.Damping*s.Velocity
		s.Velocity += accel * h
		s.Value += s.Velocity * h
		dt -= h
	}
}

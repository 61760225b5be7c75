package analysis

import (
	"math"

	"github.com/san-kum/chaoslanding/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the icon field,
// per frame, by following a copy whose first body is nudged perturbation
// pixels to the right. A positive value means nearby layouts drift apart.
//
// Algorithm:
// 1. Step the reference and the perturbed copy together
// 2. Accumulate ln(|δ(t)|/|δ(0)|) each frame
// 3. Rescale the copy back to |δ(0)| so the separation stays small
//
// f itself is not modified.
func LyapunovExponent(f *physics.Field, frames int, perturbation float64) float64 {
	if len(f.Bodies) == 0 || frames <= 0 || perturbation <= 0 {
		return 0
	}

	ref := f.Clone()
	pert := f.Clone()
	pert.Bodies[0].X += perturbation

	sumLog := 0.0
	count := 0
	for i := 0; i < frames; i++ {
		ref.Step()
		pert.Step()

		sep := separation(ref, pert)
		if sep == 0 {
			// wall clamping collapsed the perturbation
			pert = ref.Clone()
			pert.Bodies[0].X += perturbation
			continue
		}
		sumLog += math.Log(sep / perturbation)
		count++
		rescale(ref, pert, perturbation/sep)
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}

func separation(a, b *physics.Field) float64 {
	sum := 0.0
	for i := range a.Bodies {
		p, q := a.Bodies[i], b.Bodies[i]
		dx, dy := q.X-p.X, q.Y-p.Y
		dvx, dvy := q.VX-p.VX, q.VY-p.VY
		sum += dx*dx + dy*dy + dvx*dvx + dvy*dvy
	}
	return math.Sqrt(sum)
}

func rescale(ref, pert *physics.Field, k float64) {
	for i := range ref.Bodies {
		p, q := ref.Bodies[i], pert.Bodies[i]
		q.X = p.X + (q.X-p.X)*k
		q.Y = p.Y + (q.Y-p.Y)*k
		q.VX = p.VX + (q.VX-p.VX)*k
		q.VY = p.VY + (q.VY-p.VY)*k
	}
}

package metrics

import (
	"math"

	"github.com/san-kum/chaoslanding/internal/sim"
)

// PaddleTravel is the mean paddle movement per frame, in pixels.
type PaddleTravel struct {
	name    string
	last    float64
	sum     float64
	samples int
}

func NewPaddleTravel() *PaddleTravel {
	return &PaddleTravel{name: "paddle_travel"}
}

func (p *PaddleTravel) Name() string { return p.name }

func (p *PaddleTravel) Observe(f sim.Frame) {
	if p.samples > 0 {
		p.sum += math.Abs(f.PaddleX - p.last)
	}
	p.last = f.PaddleX
	p.samples++
}

func (p *PaddleTravel) Value() float64 {
	if p.samples < 2 {
		return 0
	}
	return p.sum / float64(p.samples-1)
}

func (p *PaddleTravel) Reset() {
	p.last = 0
	p.sum = 0
	p.samples = 0
}

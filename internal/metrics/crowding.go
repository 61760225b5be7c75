package metrics

import "github.com/san-kum/chaoslanding/internal/sim"

// Crowding is the fraction of frames with more than threshold items falling
// at once.
type Crowding struct {
	name      string
	threshold int
	crowded   int
	samples   int
}

func NewCrowding(threshold int) *Crowding {
	return &Crowding{
		name:      "crowding",
		threshold: threshold,
	}
}

func (c *Crowding) Name() string { return c.name }

func (c *Crowding) Observe(f sim.Frame) {
	c.samples++
	if f.Items > c.threshold {
		c.crowded++
	}
}

func (c *Crowding) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.crowded) / float64(c.samples)
}

func (c *Crowding) Reset() {
	c.crowded = 0
	c.samples = 0
}

// PeakParticles is the largest number of live particles seen in one frame.
type PeakParticles struct {
	peak int
}

func NewPeakParticles() *PeakParticles { return &PeakParticles{} }

func (p *PeakParticles) Name() string { return "peak_particles" }

func (p *PeakParticles) Observe(f sim.Frame) {
	if f.Particles > p.peak {
		p.peak = f.Particles
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }
func (p *PeakParticles) Reset()         { p.peak = 0 }

// Standard is the metric set the CLI attaches to every headless run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewPaddleTravel(),
		NewCrowding(3),
		NewPeakParticles(),
	}
}

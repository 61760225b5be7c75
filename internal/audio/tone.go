package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	Square Wave = iota
	Sawtooth
)

func (w Wave) String() string {
	if w == Sawtooth {
		return "sawtooth"
	}
	return "square"
}

const (
	// Envelope endpoints: every tone starts at peakGain and ramps
	// exponentially down to floorGain over its duration.
	peakGain  = 0.1
	floorGain = 0.01
)

// tone is a mono oscillator with an exponential decay envelope.
type tone struct {
	freq  float64
	wave  Wave
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

// NewTone returns a streamer that plays freq for d and then drains.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:  freq,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
	}
}

// envelope is the amplitude at sample i of n.
func envelope(i, n int) float64 {
	if n <= 1 {
		return peakGain
	}
	t := float64(i) / float64(n-1)
	return peakGain * math.Pow(floorGain/peakGain, t)
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.wave {
		case Sawtooth:
			v = 2*t.phase - 1
		default:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		}
		v *= envelope(t.pos, t.total)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// delayed prefixes s with d of silence.
func delayed(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return beep.Seq(beep.Silence(rate.N(d)), s)
}

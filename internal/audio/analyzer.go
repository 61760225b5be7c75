package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

const (
	analysisWindow = 1024
	bassCutoffHz   = 250.0
	midCutoffHz    = 2000.0
	levelSmoothing = 0.8
	// A full-scale cue (0.1 peak) reads close to 1 after windowing.
	levelScale = 40.0
)

// Levels are smoothed band energies in [0, 1].
type Levels struct {
	Bass, Mid, High float64
}

// Analyzer watches the mixed output and keeps per-band levels for meters.
type Analyzer struct {
	mu     sync.Mutex
	rate   float64
	window []float64
	buf    []float64
	levels Levels
}

func NewAnalyzer(rate float64) *Analyzer {
	w := make([]float64, analysisWindow)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(analysisWindow-1)))
	}
	return &Analyzer{
		rate:   rate,
		window: w,
		buf:    make([]float64, 0, analysisWindow),
	}
}

// Write feeds stereo samples. A spectrum is taken every full window.
func (a *Analyzer) Write(samples [][2]float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range samples {
		a.buf = append(a.buf, (s[0]+s[1])/2)
		if len(a.buf) == analysisWindow {
			a.analyze()
			a.buf = a.buf[:0]
		}
	}
}

func (a *Analyzer) analyze() {
	in := make([]float64, analysisWindow)
	for i, v := range a.buf {
		in[i] = v * a.window[i]
	}
	spectrum := fft.FFTReal(in)

	binHz := a.rate / analysisWindow
	var bass, mid, high float64
	for i := 1; i < analysisWindow/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		f := float64(i) * binHz
		switch {
		case f < bassCutoffHz:
			bass += mag
		case f < midCutoffHz:
			mid += mag
		default:
			high += mag
		}
	}

	norm := levelScale / analysisWindow
	a.levels.Bass = smooth(a.levels.Bass, bass*norm)
	a.levels.Mid = smooth(a.levels.Mid, mid*norm)
	a.levels.High = smooth(a.levels.High, high*norm)
}

func smooth(prev, next float64) float64 {
	return prev*levelSmoothing + math.Min(next, 1)*(1-levelSmoothing)
}

// Levels returns the latest smoothed band levels.
func (a *Analyzer) Levels() Levels {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.levels
}

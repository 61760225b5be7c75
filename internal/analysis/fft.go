package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data, zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spec := fft.FFTReal(padded)
	ps := make([]float64, max(n/2, 1))
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-DC bin of data sampled at
// sampleRate Hz.
func DominantFrequency(data []float64, sampleRate float64) (freq, power float64) {
	ps := PowerSpectrum(RemoveMean(data))
	if len(ps) < 2 {
		return 0, 0
	}
	idx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[idx] {
			idx = i
		}
	}
	n := float64(2 * len(ps))
	return float64(idx) * sampleRate / n, ps[idx]
}

// RemoveMean returns data shifted to zero mean.
func RemoveMean(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

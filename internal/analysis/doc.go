// Package analysis characterizes headless runs of the landing page.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral view of a per-frame
//     series such as live item count or field energy
//   - [LyapunovExponent]: largest Lyapunov exponent of the icon field
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent means two almost identical layouts of
// the icon field drift apart:
//
//	lambda := analysis.LyapunovExponent(field, 2000, 1e-6)
//	if lambda > 0 {
//	    // the field is chaotic
//	}
package analysis

// SPDX-License-Identifier: MIT
package dsp

import "math"

// Default spectral design targets of the reference configuration.
const (
	DefaultAttenuationDB = 78
	DefaultResolutionHz  = 25000
)

// fallbackTransformLength is used when the transform length cannot be
// derived from degenerate rate or resolution inputs.
const fallbackTransformLength = 1024

// Beta maps a target side-lobe attenuation in dB to the Kaiser window shape
// parameter, using the standard closed-form approximation. Below 13.26 dB
// the rectangular window already meets the target and no shaping is needed.
func Beta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 60:
		return 0.12438 * (attenuationDB + 6.3)
	case attenuationDB > 13.26:
		d := attenuationDB - 13.26
		return 0.76609*math.Pow(d, 0.4) + 0.09834*d
	default:
		return 0
	}
}

// TransformLength estimates the minimum Kaiser window length whose main
// lobe is narrow enough to resolve resolutionHz at attenuationDB, given the
// live sample rate. Tighter resolution or higher attenuation both push the
// length up. The result is rounded up to an even integer so the hop is an
// exact half window. Degenerate inputs fall back to a safe even default.
func TransformLength(attenuationDB, resolutionHz, sampleRate float64) int {
	if sampleRate <= 0 || resolutionHz <= 0 {
		return fallbackTransformLength
	}
	deltaML := 2 * math.Pi * resolutionHz / sampleRate
	raw := 24*math.Pi*(attenuationDB+12)/(155*deltaML) + 1
	n := int(math.Ceil(raw))
	if n%2 != 0 {
		n++
	}
	return n
}

// HopLength returns the frame advance for 50% overlap. Half-window overlap
// keeps energy near the window edges from being discarded while bounding
// compute cost.
func HopLength(nfft int) int { return nfft / 2 }

// Window returns the Kaiser window coefficients of length n and shape beta:
//
//	w[i] = I0(beta*sqrt(1-x^2)) / I0(beta),  x = 2i/(n-1) - 1
//
// beta = 0 degenerates to the rectangular window. gonum's dsp/window
// package has no Kaiser window, so the coefficients are computed here.
func Window(n int, beta float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	denom := besselI0(beta)
	for i := range w {
		x := 2*float64(i)/float64(n-1) - 1
		w[i] = besselI0(beta*math.Sqrt(1-x*x)) / denom
	}
	return w
}

// besselI0 evaluates the zeroth-order modified Bessel function of the first
// kind by its power series. The series converges quickly for the beta
// range produced by realistic attenuation targets.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2
	for k := 1; k < 64; k++ {
		t := half / float64(k)
		term *= t * t
		sum += term
		if term < sum*1e-15 {
			break
		}
	}
	return sum
}

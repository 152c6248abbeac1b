// SPDX-License-Identifier: MIT
/*
Package dsp holds the numerical core of the pipeline: the DC removal filter
with its settling-time derivation, and the Kaiser-windowed STFT engine with
its window design rules. All derivations start from the live sample rate so
that the same physical targets (cutoff in Hz, resolution in Hz) hold no
matter how the radio is configured.
*/
package dsp

import "math"

const (
	// fallbackPole is used when the sample rate is degenerate and no pole
	// can be derived.
	fallbackPole = 0.99
	// fallbackSettling is used when the pole itself is degenerate.
	fallbackSettling = 1000
	// maxPole keeps the pole strictly inside the unit circle.
	maxPole = 0.999999
)

// PoleForCutoff maps a physical cutoff frequency to the pole of a one-pole
// DC blocking high-pass via the small-angle approximation
// pole = 1 - 2*pi*fc/fs. The same numeric pole yields wildly different
// cutoffs at different sample rates, so this must be re-derived whenever
// the rate changes. A non-positive sample rate returns a safe fallback
// instead of dividing by zero.
func PoleForCutoff(cutoffHz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return fallbackPole
	}
	pole := 1 - 2*math.Pi*cutoffHz/sampleRate
	if pole < 0 {
		return 0
	}
	if pole > maxPole {
		return maxPole
	}
	return pole
}

// SettlingSamples returns how many output samples to discard before the
// filter's startup transient has decayed. The time constant is
// tau = -1/ln(pole) samples; five time constants settle the response to
// about 99.3%. Poles outside the open interval (0, 1) have no meaningful
// time constant and get a fixed fallback.
func SettlingSamples(pole float64) int {
	if pole <= 0 || pole >= 1 {
		return fallbackSettling
	}
	tau := -1 / math.Log(pole)
	return int(math.Ceil(5 * tau))
}

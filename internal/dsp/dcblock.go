// SPDX-License-Identifier: MIT
package dsp

import applog "sdrspect/internal/log"

// settleGuard is the minimum number of samples that must remain after the
// transient is discarded for filtering to be worth doing at all.
const settleGuard = 100

// DefaultDCCutoffHz is the reference DC blocker cutoff.
const DefaultDCCutoffHz = 25000

// DCBlocker removes the DC offset (and a narrow band around it) from a
// complex baseband buffer with a one-pole IIR high-pass:
//
//	y[n] = x[n] - x[n-1] + pole*y[n-1]
//
// The zero at DC comes from the {1, -1} numerator; the pole just inside the
// unit circle controls how narrow the notch is. Both the pole and the
// number of transient samples to discard are derived per call from the
// live sample rate.
type DCBlocker struct {
	// CutoffHz is the -3dB point of the high-pass. Zero selects
	// DefaultDCCutoffHz.
	CutoffHz float64
}

// Apply filters the buffer and trims the startup transient. The second
// return value reports whether filtering happened: a buffer shorter than
// its own settling time (plus a safety margin) is returned unchanged,
// because filtering it would destroy signal content for no benefit. The
// input slice is never modified.
func (b DCBlocker) Apply(samples []complex64, sampleRate float64) ([]complex64, bool) {
	cutoff := b.CutoffHz
	if cutoff == 0 {
		cutoff = DefaultDCCutoffHz
	}
	pole := PoleForCutoff(cutoff, sampleRate)
	settle := SettlingSamples(pole)

	if len(samples) < settle+settleGuard {
		applog.Warnf("dcblock: buffer of %d samples is shorter than settling time %d, returning unfiltered", len(samples), settle)
		return samples, false
	}

	filtered := filterOnePole(samples, pole)
	applog.Debugf("dcblock: pole=%.6f settle=%d in=%d out=%d", pole, settle, len(samples), len(filtered)-settle)
	return filtered[settle:], true
}

// filterOnePole runs the DC blocking recursion over the whole buffer with
// zero initial state. The recursion is evaluated in complex128 to keep the
// feedback path from accumulating float32 rounding error.
func filterOnePole(samples []complex64, pole float64) []complex64 {
	out := make([]complex64, len(samples))
	p := complex(pole, 0)
	var prevIn, prevOut complex128
	for i, s := range samples {
		x := complex128(s)
		y := x - prevIn + p*prevOut
		out[i] = complex64(y)
		prevIn = x
		prevOut = y
	}
	return out
}

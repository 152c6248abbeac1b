// SPDX-License-Identifier: MIT
// Package siggen generates complex baseband test signals. It backs the
// simulated radio front end and the DSP tests.
package siggen

import "math"

// MixTone adds a complex exponential at freqHz to dst. The sample index of
// dst[0] is start, so successive chunks mixed with a running start index are
// phase-continuous.
func MixTone(dst []complex64, start int, freqHz, sampleRate, amp float64) {
	if sampleRate <= 0 {
		return
	}
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range dst {
		phase := step * float64(start+i)
		dst[i] += complex(float32(amp*math.Cos(phase)), float32(amp*math.Sin(phase)))
	}
}

// Tone returns n samples of a complex exponential at freqHz.
func Tone(n int, freqHz, sampleRate, amp float64) []complex64 {
	buf := make([]complex64, n)
	MixTone(buf, 0, freqHz, sampleRate, amp)
	return buf
}

// AddDC adds a constant offset to every sample.
func AddDC(samples []complex64, offset complex64) {
	for i := range samples {
		samples[i] += offset
	}
}

// Mean returns the complex mean of the buffer, or zero for an empty buffer.
func Mean(samples []complex64) complex128 {
	if len(samples) == 0 {
		return 0
	}
	var sum complex128
	for _, s := range samples {
		sum += complex128(s)
	}
	return sum / complex(float64(len(samples)), 0)
}

// FindPeakBin returns the index of the largest value in mags.
func FindPeakBin(mags []float64) int {
	if len(mags) == 0 {
		return 0
	}
	peakBin := 0
	peakValue := mags[0]
	for bin := 1; bin < len(mags); bin++ {
		if mags[bin] > peakValue {
			peakValue = mags[bin]
			peakBin = bin
		}
	}
	return peakBin
}

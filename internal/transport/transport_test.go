// SPDX-License-Identifier: MIT
package transport

import (
	"testing"

	"sdrspect/internal/dsp"
)

func TestNewFrame(t *testing.T) {
	spec := &dsp.Spectrogram{
		DB:       [][]float64{{-80, -75}, {-60, -55}},
		NFFT:     2,
		Hop:      1,
		Frames:   2,
		Duration: 0.5,
		FreqLow:  2.4395e9,
		FreqHigh: 2.4405e9,
	}
	frame := NewFrame(spec, 2.44e9, 1e6)

	if frame.CenterFreqHz != 2.44e9 || frame.SampleRateHz != 1e6 {
		t.Errorf("tuning metadata not carried: %+v", frame)
	}
	if frame.FreqLowHz != spec.FreqLow || frame.FreqHighHz != spec.FreqHigh {
		t.Errorf("axis metadata not carried: %+v", frame)
	}
	if frame.NFFT != 2 || frame.Frames != 2 || frame.DurationSec != 0.5 {
		t.Errorf("geometry metadata not carried: %+v", frame)
	}
	if len(frame.DB) != 2 || frame.DB[1][1] != -55 {
		t.Error("magnitude matrix not carried")
	}
}

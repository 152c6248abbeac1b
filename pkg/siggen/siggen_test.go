// SPDX-License-Identifier: MIT
package siggen

import (
	"math/cmplx"
	"testing"
)

func TestMixToneChunksArePhaseContinuous(t *testing.T) {
	whole := Tone(256, 100e3, 1e6, 1)

	chunked := make([]complex64, 256)
	MixTone(chunked[:100], 0, 100e3, 1e6, 1)
	MixTone(chunked[100:], 100, 100e3, 1e6, 1)

	for i := range whole {
		if cmplx.Abs(complex128(whole[i]-chunked[i])) > 1e-6 {
			t.Fatalf("phase discontinuity at sample %d: %v vs %v", i, whole[i], chunked[i])
		}
	}
}

func TestToneUnitMagnitude(t *testing.T) {
	for i, v := range Tone(64, 250e3, 1e6, 1) {
		if m := cmplx.Abs(complex128(v)); m < 0.999 || m > 1.001 {
			t.Errorf("sample %d: expected unit magnitude, got %f", i, m)
		}
	}
}

func TestMeanAndAddDC(t *testing.T) {
	buf := make([]complex64, 1000)
	if Mean(buf) != 0 {
		t.Error("zero buffer should have zero mean")
	}
	AddDC(buf, complex(0.25, -0.5))
	mean := Mean(buf)
	if cmplx.Abs(mean-complex(0.25, -0.5)) > 1e-6 {
		t.Errorf("expected mean 0.25-0.5i, got %v", mean)
	}
	if Mean(nil) != 0 {
		t.Error("empty buffer should have zero mean")
	}
}

func TestFindPeakBin(t *testing.T) {
	if got := FindPeakBin([]float64{-80, -20, -50, -20}); got != 1 {
		t.Errorf("expected first-seen peak at 1, got %d", got)
	}
	if got := FindPeakBin(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}

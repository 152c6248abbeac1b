// SPDX-License-Identifier: MIT
package dsp

import (
	"errors"
	"math"
	"testing"

	"sdrspect/pkg/siggen"
)

// column extracts frame c of the spectrogram as one magnitude slice.
func column(spec *Spectrogram, c int) []float64 {
	col := make([]float64, spec.NFFT)
	for r := 0; r < spec.NFFT; r++ {
		col[r] = spec.DB[r][c]
	}
	return col
}

func TestAnalyzeToneLandsInCorrectBin(t *testing.T) {
	const fs = 1e6
	engine := Engine{AttenuationDB: 78, ResolutionHz: 25000}

	// At 1 Msps the derived transform length is 280 (hop 140); a +100 kHz
	// tone sits exactly 28 bins above the centered DC row.
	in := siggen.Tone(4096, 100e3, fs, 1)
	spec, err := engine.Analyze(in, fs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.NFFT != 280 || spec.Hop != 140 {
		t.Fatalf("unexpected frame geometry: nfft=%d hop=%d", spec.NFFT, spec.Hop)
	}
	wantFrames := (4096-280)/140 + 1
	if spec.Frames != wantFrames {
		t.Fatalf("expected %d frames, got %d", wantFrames, spec.Frames)
	}

	wantRow := spec.NFFT/2 + 28
	for c := 0; c < spec.Frames; c++ {
		peak := siggen.FindPeakBin(column(spec, c))
		if peak < wantRow-1 || peak > wantRow+1 {
			t.Fatalf("frame %d: peak at row %d, expected %d +/- 1", c, peak, wantRow)
		}
	}
}

func TestAnalyzeNegativeFrequencyTone(t *testing.T) {
	const fs = 1e6
	engine := Engine{AttenuationDB: 78, ResolutionHz: 25000}

	in := siggen.Tone(4096, -200e3, fs, 1)
	spec, err := engine.Analyze(in, fs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// -200 kHz maps below the centered DC row: negative offsets occupy the
	// low rows of the matrix.
	wantRow := spec.NFFT/2 - 56
	for c := 0; c < spec.Frames; c++ {
		peak := siggen.FindPeakBin(column(spec, c))
		if peak < wantRow-1 || peak > wantRow+1 {
			t.Fatalf("frame %d: peak at row %d, expected %d +/- 1", c, peak, wantRow)
		}
	}
}

func TestAnalyzeShortBuffer(t *testing.T) {
	engine := Engine{AttenuationDB: 78, ResolutionHz: 25000}
	spec, err := engine.Analyze(make([]complex64, 100), 1e6, 0)
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if spec != nil {
		t.Error("expected no spectrogram for a short buffer")
	}
}

func TestAnalyzeAxes(t *testing.T) {
	const (
		fs     = 1e6
		center = 2.44e9
	)
	engine := Engine{}
	in := siggen.Tone(4096, 100e3, fs, 1)
	spec, err := engine.Analyze(in, fs, center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.FreqLow != center-fs/2 || spec.FreqHigh != center+fs/2 {
		t.Errorf("frequency axis [%f, %f] does not bracket center %f", spec.FreqLow, spec.FreqHigh, center)
	}
	if math.Abs(spec.Duration-4096.0/fs) > 1e-12 {
		t.Errorf("expected duration %f, got %f", 4096.0/fs, spec.Duration)
	}
	if got := spec.BinFreq(0); got != spec.FreqLow {
		t.Errorf("row 0 should be the lowest frequency, got %f", got)
	}
	if got := spec.BinFreq(spec.NFFT / 2); math.Abs(got-center) > 1 {
		t.Errorf("middle row should be the tuned center, got %f", got)
	}
	if got := spec.FrameTime(0); got != 0 {
		t.Errorf("first frame should start at t=0, got %f", got)
	}
	if got := spec.FrameTime(spec.Frames - 1); got <= 0 || got >= spec.Duration {
		t.Errorf("last frame start %f should fall inside (0, %f)", got, spec.Duration)
	}
}

func TestAnalyzeDefaultsApplied(t *testing.T) {
	// A zero-valued engine uses the reference targets.
	in := siggen.Tone(4096, 100e3, 1e6, 1)
	spec, err := Engine{}.Analyze(in, 1e6, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.NFFT != 280 {
		t.Errorf("expected reference-target transform length 280, got %d", spec.NFFT)
	}
	if math.Abs(spec.Beta-10.485) > 1e-3 {
		t.Errorf("expected reference beta near 10.485, got %f", spec.Beta)
	}
}

func TestAnalyzeFiniteOutput(t *testing.T) {
	// Even a silent buffer must produce finite dB values thanks to the
	// magnitude floor.
	in := make([]complex64, 2048)
	spec, err := Engine{AttenuationDB: 78, ResolutionHz: 25000}.Analyze(in, 1e6, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for r := range spec.DB {
		for c := range spec.DB[r] {
			v := spec.DB[r][c]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite magnitude at [%d][%d]: %f", r, c, v)
			}
		}
	}
}

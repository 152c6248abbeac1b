// SPDX-License-Identifier: MIT
package dsp

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	applog "sdrspect/internal/log"
)

// ErrShortBuffer reports that a buffer cannot fill even one analysis frame.
// The capture and filtering results remain usable on their own.
var ErrShortBuffer = errors.New("stft: not enough samples for one frame")

// dbFloor avoids the log singularity at exact zero magnitude.
const dbFloor = 1e-12

// Spectrogram is the magnitude matrix of one analysis run, plus the axis
// metadata a renderer needs. Rows are frequency bins from the most negative
// offset (row 0) through DC (row NFFT/2) to the most positive; columns are
// successive half-overlapping time frames.
type Spectrogram struct {
	// DB holds magnitudes in dB, indexed [bin][frame].
	DB [][]float64

	NFFT   int
	Hop    int
	Frames int
	Beta   float64

	// Duration is the time span of the source buffer in seconds.
	Duration float64
	// FreqLow and FreqHigh bound the displayed band in absolute Hz,
	// centered on the tuned frequency.
	FreqLow  float64
	FreqHigh float64
}

// BinFreq returns the absolute frequency in Hz of bin row i.
func (s *Spectrogram) BinFreq(i int) float64 {
	if s.NFFT == 0 {
		return 0
	}
	return s.FreqLow + (s.FreqHigh-s.FreqLow)*float64(i)/float64(s.NFFT)
}

// FrameTime returns the start time in seconds of frame column i.
func (s *Spectrogram) FrameTime(i int) float64 {
	if s.Frames <= 1 {
		return 0
	}
	return s.Duration * float64(i*s.Hop) / (float64((s.Frames-1)*s.Hop + s.NFFT))
}

// Engine computes Kaiser-windowed spectrograms. The window shape and
// transform length are not fixed: they are re-derived from the attenuation
// and resolution targets against the live sample rate on every call, so
// one Engine serves captures at any rate. Engines with different targets
// can coexist; nothing is process-global.
type Engine struct {
	// AttenuationDB is the target side-lobe attenuation. Zero selects
	// DefaultAttenuationDB.
	AttenuationDB float64
	// ResolutionHz is the target frequency resolution. Zero selects
	// DefaultResolutionHz.
	ResolutionHz float64
}

// Analyze frames the buffer, computes per-frame magnitude spectra and
// assembles the spectrogram. The frequency axis is recentered so row 0
// carries the most negative offset from centerFreq. Returns ErrShortBuffer
// when the buffer cannot fill a single frame.
func (e Engine) Analyze(samples []complex64, sampleRate, centerFreq float64) (*Spectrogram, error) {
	attenuation := e.AttenuationDB
	if attenuation == 0 {
		attenuation = DefaultAttenuationDB
	}
	resolution := e.ResolutionHz
	if resolution == 0 {
		resolution = DefaultResolutionHz
	}

	beta := Beta(attenuation)
	nfft := TransformLength(attenuation, resolution, sampleRate)
	hop := HopLength(nfft)

	frames := 0
	if len(samples) >= nfft {
		frames = (len(samples)-nfft)/hop + 1
	}
	if frames <= 0 {
		applog.Warnf("stft: %d samples cannot fill one %d-point frame", len(samples), nfft)
		return nil, ErrShortBuffer
	}
	applog.Debugf("stft: beta=%.3f nfft=%d hop=%d frames=%d", beta, nfft, hop, frames)

	window := Window(nfft, beta)
	fft := fourier.NewCmplxFFT(nfft)
	frame := make([]complex128, nfft)
	coeff := make([]complex128, nfft)

	spec := &Spectrogram{
		DB:     make([][]float64, nfft),
		NFFT:   nfft,
		Hop:    hop,
		Frames: frames,
		Beta:   beta,
	}
	for r := range spec.DB {
		spec.DB[r] = make([]float64, frames)
	}
	if sampleRate > 0 {
		spec.Duration = float64(len(samples)) / sampleRate
	}
	spec.FreqLow = centerFreq - sampleRate/2
	spec.FreqHigh = centerFreq + sampleRate/2

	half := nfft / 2
	for i := 0; i < frames; i++ {
		start := i * hop
		for j := 0; j < nfft; j++ {
			frame[j] = complex128(samples[start+j]) * complex(window[j], 0)
		}
		fft.Coefficients(coeff, frame)

		// Recenter so negative frequencies come first and DC sits in the
		// middle, matching the axis against centerFreq.
		for r := 0; r < nfft; r++ {
			mag := cmplx.Abs(coeff[(r+half)%nfft])
			spec.DB[r][i] = 20 * math.Log10(mag+dbFloor)
		}
	}
	return spec, nil
}

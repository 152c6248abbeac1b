// SPDX-License-Identifier: MIT
package transport

import "sdrspect/internal/dsp"

// Frame is the wire form of one finished analysis run: the spectrogram
// matrix plus the axis metadata a remote viewer needs to label it.
type Frame struct {
	CenterFreqHz float64     `json:"center_freq_hz"`
	SampleRateHz float64     `json:"sample_rate_hz"`
	FreqLowHz    float64     `json:"freq_low_hz"`
	FreqHighHz   float64     `json:"freq_high_hz"`
	DurationSec  float64     `json:"duration_sec"`
	NFFT         int         `json:"n_fft"`
	Hop          int         `json:"hop"`
	Frames       int         `json:"frames"`
	DB           [][]float64 `json:"db"`
}

// NewFrame packs a spectrogram for publishing.
func NewFrame(spec *dsp.Spectrogram, centerFreqHz, sampleRateHz float64) *Frame {
	return &Frame{
		CenterFreqHz: centerFreqHz,
		SampleRateHz: sampleRateHz,
		FreqLowHz:    spec.FreqLow,
		FreqHighHz:   spec.FreqHigh,
		DurationSec:  spec.Duration,
		NFFT:         spec.NFFT,
		Hop:          spec.Hop,
		Frames:       spec.Frames,
		DB:           spec.DB,
	}
}

// Publisher hands finished frames to external viewers.
// Implementations should be thread-safe.
type Publisher interface {
	Publish(frame *Frame) error
	Close() error
}

// SPDX-License-Identifier: MIT
package radio

import (
	"fmt"
	"math/rand"

	"sdrspect/pkg/siggen"
)

const sourceName = "sim"

// SimTone describes one synthetic carrier, placed relative to the tuned
// center frequency.
type SimTone struct {
	OffsetHz float64
	Amp      float64
}

// Sim is a deterministic software front end. It synthesizes a baseband mix
// of carriers, DC offset and Gaussian noise, delivered in bounded chunks
// like real streaming hardware. Every field is read at OpenStream time, so
// a Sim can be reconfigured between captures but not during one.
type Sim struct {
	Tones         []SimTone
	DC            complex64
	NoiseAmp      float64
	ChunkSize     int
	OverflowEvery int // if > 0, every Nth chunk reports an overflow
	Seed          int64

	connected  bool
	sampleRate float64
	centerFreq float64
	gainDB     float64
}

// NewSim returns a simulated front end with a signal mix that is visible on
// a spectrogram at typical test rates: two carriers offset from center, a DC
// offset for the blocker to remove, and a low noise floor.
func NewSim(chunkSize int) *Sim {
	return &Sim{
		Tones: []SimTone{
			{OffsetHz: 2.5e6, Amp: 0.5},
			{OffsetHz: -5e6, Amp: 0.25},
		},
		DC:        complex(0.1, 0.05),
		NoiseAmp:  0.01,
		ChunkSize: chunkSize,
		Seed:      1,
	}
}

func (s *Sim) Name() string { return sourceName }

// Connect validates the static configuration. The sim has no hardware to
// reach, so this can only fail on bad parameters.
func (s *Sim) Connect() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("sim: chunk size must be positive, got %d", s.ChunkSize)
	}
	s.connected = true
	return nil
}

func (s *Sim) SetSampleRate(hz float64) error {
	if hz <= 0 {
		return fmt.Errorf("sim: sample rate must be positive, got %f", hz)
	}
	s.sampleRate = hz
	return nil
}

func (s *Sim) SetCenterFreq(hz float64) error {
	s.centerFreq = hz
	return nil
}

func (s *Sim) SetGain(db float64) error {
	s.gainDB = db
	return nil
}

// OpenStream starts synthetic sample delivery. The stream snapshots the
// current configuration; later Set* calls affect the next stream only.
func (s *Sim) OpenStream() (Stream, error) {
	if !s.connected {
		return nil, fmt.Errorf("sim: not connected")
	}
	if s.sampleRate <= 0 {
		return nil, fmt.Errorf("sim: sample rate not configured")
	}
	tones := make([]SimTone, len(s.Tones))
	copy(tones, s.Tones)
	return &simStream{
		tones:         tones,
		dc:            s.DC,
		noiseAmp:      s.NoiseAmp,
		chunk:         s.ChunkSize,
		overflowEvery: s.OverflowEvery,
		sampleRate:    s.sampleRate,
		rng:           rand.New(rand.NewSource(s.Seed)),
	}, nil
}

func (s *Sim) Close() error {
	s.connected = false
	return nil
}

type simStream struct {
	tones         []SimTone
	dc            complex64
	noiseAmp      float64
	chunk         int
	overflowEvery int
	sampleRate    float64
	rng           *rand.Rand

	pos    int // absolute sample index, keeps tone phases continuous
	chunks int
}

func (st *simStream) MaxChunk() int { return st.chunk }

func (st *simStream) ReceiveChunk(dst []complex64) (int, ErrorCode) {
	n := len(dst)
	if n > st.chunk {
		n = st.chunk
	}
	if n == 0 {
		return 0, ErrorNone
	}
	out := dst[:n]
	for i := range out {
		out[i] = 0
	}
	for _, tone := range st.tones {
		siggen.MixTone(out, st.pos, tone.OffsetHz, st.sampleRate, tone.Amp)
	}
	if st.noiseAmp > 0 {
		for i := range out {
			out[i] += complex(
				float32(st.rng.NormFloat64()*st.noiseAmp),
				float32(st.rng.NormFloat64()*st.noiseAmp),
			)
		}
	}
	siggen.AddDC(out, st.dc)

	st.pos += n
	st.chunks++
	if st.overflowEvery > 0 && st.chunks%st.overflowEvery == 0 {
		return n, ErrorOverflow
	}
	return n, ErrorNone
}

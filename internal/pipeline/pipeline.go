// SPDX-License-Identifier: MIT
/*
Package pipeline orchestrates one capture-to-spectrogram run: acquire a
bounded buffer from the radio, strip its DC offset, analyze it into a
magnitude matrix, and hand everything to the caller. The pipeline is
single-threaded; each run owns its buffers and nothing survives across
runs. A run distinguishes "no data" (hard failure) from "some data,
degraded" (partial capture, or too little data for a spectrogram), in
which case whatever succeeded is still returned.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"sdrspect/internal/capture"
	"sdrspect/internal/dsp"
	applog "sdrspect/internal/log"
	"sdrspect/internal/radio"
)

// ErrNoData reports a capture that produced nothing usable.
var ErrNoData = errors.New("pipeline: capture produced no samples")

// Params selects one run. SampleRate doubles as the analysis bandwidth,
// matching how an SDR front end couples the two.
type Params struct {
	CenterFreqHz float64
	SampleRateHz float64
	Dwell        time.Duration
	GainDB       float64
}

// Result carries everything one run produced. Spec is nil when the cleaned
// buffer could not fill a single analysis frame; Capture and Clean remain
// valid in that case.
type Result struct {
	Capture  capture.Result
	Clean    []complex64
	Filtered bool
	Spec     *dsp.Spectrogram
}

// Degraded reports whether the run fell short anywhere: partial capture,
// skipped filtering, or missing spectrogram.
func (r *Result) Degraded() bool {
	return !r.Capture.Complete() || !r.Filtered || r.Spec == nil
}

// Pipeline wires a radio front end to the DSP stages. The blocker and
// engine carry their own targets, so pipelines with different tunings can
// coexist in one process.
type Pipeline struct {
	Frontend   radio.Frontend
	Blocker    dsp.DCBlocker
	Engine     dsp.Engine
	StallLimit int
}

// Run executes one bounded capture-then-process batch. Frontend
// configuration errors abort before any capture; after samples exist, the
// downstream stages degrade instead of failing (see Result).
func (p *Pipeline) Run(ctx context.Context, prm Params) (*Result, error) {
	if err := p.Frontend.SetSampleRate(prm.SampleRateHz); err != nil {
		return nil, fmt.Errorf("pipeline: set sample rate: %w", err)
	}
	if err := p.Frontend.SetCenterFreq(prm.CenterFreqHz); err != nil {
		return nil, fmt.Errorf("pipeline: set center frequency: %w", err)
	}
	if err := p.Frontend.SetGain(prm.GainDB); err != nil {
		return nil, fmt.Errorf("pipeline: set gain: %w", err)
	}
	stream, err := p.Frontend.OpenStream()
	if err != nil {
		return nil, fmt.Errorf("pipeline: open stream: %w", err)
	}

	target := int(math.Ceil(prm.Dwell.Seconds() * prm.SampleRateHz))
	applog.Infof("pipeline: capturing %s (%d samples) at %.3f MHz, %.3f Msps",
		prm.Dwell, target, prm.CenterFreqHz/1e6, prm.SampleRateHz/1e6)

	loop := &capture.Loop{Stream: stream, StallLimit: p.StallLimit}
	res := &Result{Capture: loop.Fill(ctx, target)}
	if res.Capture.Received == 0 {
		return nil, ErrNoData
	}
	if !res.Capture.Complete() {
		applog.Warnf("pipeline: degraded capture, %d of %d samples (last error %q)",
			res.Capture.Received, target, res.Capture.LastError)
	}

	res.Clean, res.Filtered = p.Blocker.Apply(res.Capture.Samples, prm.SampleRateHz)

	spec, err := p.Engine.Analyze(res.Clean, prm.SampleRateHz, prm.CenterFreqHz)
	switch {
	case errors.Is(err, dsp.ErrShortBuffer):
		applog.Warnf("pipeline: skipping spectrogram: %v", err)
	case err != nil:
		return nil, fmt.Errorf("pipeline: analyze: %w", err)
	default:
		res.Spec = spec
		applog.Infof("pipeline: spectrogram %dx%d (beta %.2f)", spec.NFFT, spec.Frames, spec.Beta)
	}
	return res, nil
}

// SPDX-License-Identifier: MIT
/*
Package capture assembles a fixed-length sample buffer from the packetized,
rate-limited delivery of a radio stream. The hardware hands over chunks of
varying size at its own pace; the pipeline needs one contiguous buffer of an
exact target length. The loop here reconciles the two while surviving
transient overflows and terminating deterministically when the stream goes
silent or dies.
*/
package capture

import (
	"context"

	applog "sdrspect/internal/log"
	"sdrspect/internal/radio"
)

// DefaultStallLimit is the number of consecutive empty reads tolerated
// before a capture is abandoned.
const DefaultStallLimit = 1000

// State describes how a capture ended.
type State int

const (
	// StateFilling is the in-progress state; a returned Result never
	// carries it.
	StateFilling State = iota
	// StateDone means the target length was reached.
	StateDone
	// StateAborted means the capture ended early on a fatal transport
	// error, a stall, or cancellation. The partial buffer is still valid.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateFilling:
		return "filling"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result is the outcome of one capture. Samples holds exactly the samples
// received, which is the full target on StateDone and a prefix of it on
// StateAborted.
type Result struct {
	Samples   []complex64
	Received  int
	Target    int
	State     State
	Overflows int
	LastError radio.ErrorCode
}

// Complete reports whether the full target was acquired.
func (r Result) Complete() bool { return r.State == StateDone }

// Loop drives a radio stream until a target number of samples has been
// collected. The zero value is not usable; Stream must be set.
type Loop struct {
	Stream radio.Stream

	// StallLimit is the number of consecutive empty reads tolerated before
	// aborting. Zero or negative selects DefaultStallLimit.
	StallLimit int
}

// Fill collects target samples from the stream. It never overfills: a chunk
// that would run past the target is clamped. Overflow reports are counted
// and logged but do not stop the capture; any other transport error does,
// as does ctx cancellation, in both cases returning what was collected so
// far. Fill blocks only inside the stream's ReceiveChunk.
func (l *Loop) Fill(ctx context.Context, target int) Result {
	stallLimit := l.StallLimit
	if stallLimit <= 0 {
		stallLimit = DefaultStallLimit
	}

	res := Result{
		Samples: make([]complex64, target),
		Target:  target,
		State:   StateFilling,
	}
	if target <= 0 {
		res.State = StateDone
		res.Samples = res.Samples[:0]
		return res
	}

	scratch := make([]complex64, l.Stream.MaxChunk())
	stalls := 0

	for res.Received < target {
		if ctx.Err() != nil {
			applog.Warnf("capture: cancelled after %d/%d samples", res.Received, target)
			res.State = StateAborted
			break
		}

		n, code := l.Stream.ReceiveChunk(scratch)
		if code != radio.ErrorNone {
			res.LastError = code
			if code.Fatal() {
				applog.Errorf("capture: stream error %q after %d/%d samples", code, res.Received, target)
				res.State = StateAborted
				break
			}
			// Overflow means dropped samples, not a dead stream.
			res.Overflows++
			applog.Warnf("capture: overflow (dropped samples) at %d/%d", res.Received, target)
		}

		if n > 0 {
			count := n
			if remaining := target - res.Received; count > remaining {
				count = remaining
			}
			copy(res.Samples[res.Received:], scratch[:count])
			res.Received += count
			stalls = 0
			continue
		}

		stalls++
		if stalls > stallLimit {
			applog.Warnf("capture: stalled for %d consecutive reads, giving up at %d/%d", stallLimit, res.Received, target)
			res.State = StateAborted
			break
		}
	}

	if res.State == StateFilling {
		res.State = StateDone
	}
	res.Samples = res.Samples[:res.Received]
	return res
}

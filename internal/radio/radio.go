// SPDX-License-Identifier: MIT
/*
Package radio defines the contract between the capture pipeline and a radio
front end. The pipeline only needs two capabilities from the hardware side:
configuring the receive chain (rate, frequency, gain) and pulling bounded
chunks of complex baseband samples off a stream. Transport problems are
reported as error codes on each read rather than as Go errors so that the
acquisition loop can distinguish recoverable conditions (overflow) from
fatal ones.
*/
package radio

// ErrorCode classifies the outcome of a single stream read.
type ErrorCode int

const (
	// ErrorNone indicates a clean read.
	ErrorNone ErrorCode = iota
	// ErrorOverflow indicates the producer outran the consumer and samples
	// were dropped. Recoverable; the stream keeps delivering.
	ErrorOverflow
	// ErrorTimeout indicates the hardware produced nothing within its
	// internal deadline.
	ErrorTimeout
	// ErrorSequence indicates a gap or reordering in the sample transport.
	ErrorSequence
	// ErrorInternal indicates an unspecified transport fault.
	ErrorInternal
)

// String returns a short name for the error code, for logs.
func (e ErrorCode) String() string {
	switch e {
	case ErrorNone:
		return "none"
	case ErrorOverflow:
		return "overflow"
	case ErrorTimeout:
		return "timeout"
	case ErrorSequence:
		return "sequence"
	case ErrorInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Fatal reports whether the code terminates a capture. Overflow means
// dropped samples, not a dead stream, so it is the only non-clean code
// a capture survives.
func (e ErrorCode) Fatal() bool {
	return e != ErrorNone && e != ErrorOverflow
}

// Stream delivers complex baseband samples in bounded chunks.
type Stream interface {
	// MaxChunk returns the maximum number of samples a single
	// ReceiveChunk call can deliver.
	MaxChunk() int

	// ReceiveChunk writes up to MaxChunk samples into dst and returns the
	// number written together with a transport error code. A return of
	// (0, ErrorNone) is a stall, not an error; the caller decides how many
	// consecutive stalls to tolerate. May block on I/O.
	ReceiveChunk(dst []complex64) (int, ErrorCode)
}

// Frontend models the configurable receive chain of an SDR device.
// Connect reports failure as an error value so the caller can surface it
// once instead of unwinding the whole process.
type Frontend interface {
	Name() string
	Connect() error
	SetSampleRate(hz float64) error
	SetCenterFreq(hz float64) error
	SetGain(db float64) error

	// OpenStream starts sample delivery at the configured rate and
	// frequency. The returned stream stays valid until Close.
	OpenStream() (Stream, error)

	Close() error
}

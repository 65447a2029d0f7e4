// Package synth generates mono audio sample-by-sample from a tree of signal nodes.
//
// Every node implements Signal. Nodes own their children, keep all state
// pre-allocated from construction, and never allocate, block or lock in Next,
// so a pipeline can be pulled directly from a real-time audio callback.
// Nodes are not safe for concurrent use.
package synth

import "errors"

var (
	// ErrZeroLength is returned when a frame count that is used as a divisor is not positive.
	ErrZeroLength = errors.New("length must be positive")
	// ErrDelayTooLong is returned when a string's delay line would exceed its fixed capacity.
	ErrDelayTooLong = errors.New("delay line length exceeds capacity")
	// ErrInvalidFilter is returned for filter parameters outside the usable range.
	ErrInvalidFilter = errors.New("invalid filter parameters")
	// ErrInvalidFrequency is returned for non-positive or non-finite frequencies and rates.
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// Signal is a sequential source of normalized samples.
//
// Next returns the next sample and true, or 0 and false once a finite signal
// is exhausted. After the first false every later call also returns false.
type Signal interface {
	Next() (float64, bool)
}

// Drain pulls at most max samples from s into a new slice, stopping early
// when s is exhausted. It allocates and is meant for offline rendering.
func Drain(s Signal, max int) []float64 {
	out := make([]float64, 0, max)
	for len(out) < max {
		x, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, x)
	}
	return out
}

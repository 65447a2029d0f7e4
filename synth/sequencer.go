package synth

import (
	"fmt"
	"math"
)

// stepper advances through fixed-length steps, taking values from the tail of
// its sequence. Once the sequence is empty the zero value is used.
type stepper[T any] struct {
	seq     []T
	frame   int
	length  int
	current T
}

func newStepper[T any](seq []T, length int) stepper[T] {
	s := stepper[T]{
		seq:    append([]T(nil), seq...),
		length: length,
	}
	s.current = s.pop()
	return s
}

func (s *stepper[T]) pop() T {
	var zero T
	n := len(s.seq)
	if n == 0 {
		return zero
	}
	v := s.seq[n-1]
	s.seq = s.seq[:n-1]
	return v
}

// advance moves one frame forward and returns the value of the current step.
func (s *stepper[T]) advance() T {
	s.frame++
	if s.frame > s.length {
		s.frame -= s.length
		s.current = s.pop()
	}
	return s.current
}

// Track outputs the frequency of the current step (0 for rests and after the
// sequence is exhausted). Steps are consumed from the end of the slice.
type Track struct {
	steps stepper[float64]
}

// NewTrack creates a frequency step sequencer; the slice is copied.
func NewTrack(freqs []float64, stepLength int) (*Track, error) {
	if err := checkLengths(stepLength); err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}
	for i, f := range freqs {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("track: step %d: %w: %g Hz", i, ErrInvalidFrequency, f)
		}
	}
	return &Track{steps: newStepper(freqs, stepLength)}, nil
}

// Next implements Signal. The signal never ends.
func (t *Track) Next() (float64, bool) {
	return t.steps.advance(), true
}

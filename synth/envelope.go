package synth

import "fmt"

// Envelope is a one-shot linear attack/sustain/release gain of fixed length.
type Envelope struct {
	frame   int
	total   int
	attack  int
	release int
}

// NewEnvelope creates an envelope lasting total frames. All lengths must be positive.
func NewEnvelope(total, attack, release int) (*Envelope, error) {
	if err := checkLengths(total, attack, release); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	return &Envelope{total: total, attack: attack, release: release}, nil
}

// Next implements Signal.
func (e *Envelope) Next() (float64, bool) {
	if e.frame > e.total {
		return 0, false
	}
	e.frame++
	if e.frame > e.total {
		return 0, false
	}
	return shape(e.frame, e.total, e.attack, e.release), true
}

// shape evaluates the gain at 1-based frame n of a segment of the given length.
// Release is tested first, so it wins when attack and release overlap.
func shape(n, length, attack, release int) float64 {
	if n > length-release {
		return float64(length-n) / float64(release)
	}
	if n <= attack {
		return float64(n) / float64(attack)
	}
	return 1
}

func checkLengths(lengths ...int) error {
	for _, n := range lengths {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrZeroLength, n)
		}
	}
	return nil
}

// StepEnvelope replays the attack/sustain/release contour on every step whose
// value is on, and outputs 0 on off steps and after the sequence is exhausted.
type StepEnvelope struct {
	steps   stepper[bool]
	attack  int
	release int
}

// NewStepEnvelope creates a step-sequenced envelope. Steps are consumed from the
// end of the slice; the slice is copied.
func NewStepEnvelope(steps []bool, stepLength, attack, release int) (*StepEnvelope, error) {
	if err := checkLengths(stepLength, attack, release); err != nil {
		return nil, fmt.Errorf("step envelope: %w", err)
	}
	return &StepEnvelope{
		steps:   newStepper(steps, stepLength),
		attack:  attack,
		release: release,
	}, nil
}

// Next implements Signal. The signal never ends.
func (e *StepEnvelope) Next() (float64, bool) {
	if !e.steps.advance() {
		return 0, true
	}
	return shape(e.steps.frame, e.steps.length, e.attack, e.release), true
}

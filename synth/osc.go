package synth

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultSeed seeds noise sources when no seed is given.
const DefaultSeed = 1234

// phase accumulates a normalized phase in [0,1).
type phase struct {
	next float64
	step float64
}

func newPhase(sampleRate, freq float64) phase {
	return phase{step: freq / sampleRate}
}

// checkRate requires a positive finite sample rate and, for fixed-frequency
// oscillators, a finite frequency >= 0.
func checkRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidFrequency, sampleRate)
	}
	return nil
}

func checkOsc(name string, sampleRate, freq float64) error {
	if err := checkRate(sampleRate); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !(freq >= 0) || math.IsInf(freq, 0) {
		return fmt.Errorf("%s: %w: %g Hz", name, ErrInvalidFrequency, freq)
	}
	return nil
}

// advance returns the current phase and moves to the next one.
func (p *phase) advance() float64 {
	ph := p.next
	_, p.next = math.Modf(p.next + p.step)
	return ph
}

// Sine is a constant-frequency sine oscillator.
type Sine struct {
	phase phase
}

// NewSine creates a sine oscillator at freq Hz.
func NewSine(sampleRate, freq float64) (*Sine, error) {
	if err := checkOsc("sine", sampleRate, freq); err != nil {
		return nil, err
	}
	return &Sine{phase: newPhase(sampleRate, freq)}, nil
}

// Next implements Signal.
func (o *Sine) Next() (float64, bool) {
	return math.Sin(2 * math.Pi * o.phase.advance()), true
}

// Square is a constant-frequency square oscillator (+1 for the first half period).
type Square struct {
	phase phase
}

// NewSquare creates a square oscillator at freq Hz.
func NewSquare(sampleRate, freq float64) (*Square, error) {
	if err := checkOsc("square", sampleRate, freq); err != nil {
		return nil, err
	}
	return &Square{phase: newPhase(sampleRate, freq)}, nil
}

// Next implements Signal.
func (o *Square) Next() (float64, bool) {
	if o.phase.advance() < 0.5 {
		return 1, true
	}
	return -1, true
}

// Saw is a naive (aliasing) falling sawtooth.
type Saw struct {
	phase phase
}

// NewSaw creates a naive sawtooth at freq Hz.
func NewSaw(sampleRate, freq float64) (*Saw, error) {
	if err := checkOsc("saw", sampleRate, freq); err != nil {
		return nil, err
	}
	return &Saw{phase: newPhase(sampleRate, freq)}, nil
}

// Next implements Signal.
func (o *Saw) Next() (float64, bool) {
	return naiveSaw(o.phase.advance()), true
}

func naiveSaw(ph float64) float64 {
	return ph*-2 + 1
}

// SineFrom is a sine oscillator whose frequency is read from another signal
// once per sample. A 0 Hz input holds the phase. It ends when freq ends.
type SineFrom struct {
	freq       Signal
	sampleRate float64
	ph         float64
	done       bool
}

// NewSineFrom creates a sine oscillator driven by the frequency signal freq.
func NewSineFrom(sampleRate float64, freq Signal) (*SineFrom, error) {
	if err := checkRate(sampleRate); err != nil {
		return nil, fmt.Errorf("sine from: %w", err)
	}
	if freq == nil {
		return nil, fmt.Errorf("sine from: nil frequency signal")
	}
	return &SineFrom{freq: freq, sampleRate: sampleRate}, nil
}

// Next implements Signal.
func (o *SineFrom) Next() (float64, bool) {
	if o.done {
		return 0, false
	}
	f, ok := o.freq.Next()
	if !ok {
		o.done = true
		return 0, false
	}
	out := math.Sin(2 * math.Pi * o.ph)
	_, o.ph = math.Modf(o.ph + f/o.sampleRate)
	if o.ph < 0 {
		o.ph++
	}
	return out, true
}

// Noise is deterministic white noise in [-1, 1).
type Noise struct {
	rng *rand.Rand
}

// NewNoise creates a noise source; equal seeds produce equal sequences.
func NewNoise(seed int64) *Noise {
	return &Noise{rng: rand.New(rand.NewSource(seed))}
}

// Next implements Signal.
func (n *Noise) Next() (float64, bool) {
	return n.rng.Float64()*2 - 1, true
}

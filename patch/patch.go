// Package patch describes the demo pipelines and builds them into signal trees.
package patch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/synth"
)

// Kind selects one of the demo pipelines.
type Kind string

const (
	KindSine     Kind = "sine"
	KindMelody   Kind = "melody"
	KindFilter   Kind = "filter"
	KindKarplus  Kind = "karplus"
	KindPolyBLEP Kind = "polyblep"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindSine, KindMelody, KindFilter, KindKarplus, KindPolyBLEP}

// FilterLayout selects the biquad state representation.
type FilterLayout string

const (
	// FilterShift keeps x0..x2 and y0..y2 in explicit shift registers.
	FilterShift FilterLayout = "shift"
	// FilterRing keeps the last two inputs and outputs in two-slot rings.
	FilterRing FilterLayout = "ring"
)

// Track1 and Track2 are the default melody and bass lines in Hz.
var (
	Track1 = []float64{659.26, 587.33, 523.25, 493.88, 440.00, 392.00, 440.00, 493.88}
	Track2 = []float64{261.63, 196.00, 220.00, 164.81, 174.61, 130.81, 174.61, 196.00}
)

// Params holds all parameters of a demo pipeline. Lengths are in frames unless noted.
type Params struct {
	Kind Kind

	AttackFrames  int
	ReleaseFrames int
	// TailFrames of silence are appended so playback does not end with a click.
	TailFrames int
	// StepSeconds is the duration of one step (and of the one-shot sine note).
	StepSeconds float64
	// Steps is the note on/off pattern; it also sets the length of the
	// filter, karplus and polyblep pipelines. Consumed from the end.
	Steps []bool

	// Freq is the oscillator or string frequency in Hz.
	Freq float64

	// Tracks are melody voices in Hz (0 = rest). Consumed from the end.
	Tracks [][]float64

	Cutoff float64
	Q      float64
	Layout FilterLayout

	Damping float64
	Decay   float64
	Seed    int64
}

// NewDefault returns the default parameters of the given demo.
func NewDefault(kind Kind) (*Params, error) {
	p := &Params{
		Kind:          kind,
		AttackFrames:  1000,
		ReleaseFrames: 1000,
		TailFrames:    1000,
		StepSeconds:   1.0,
		Steps:         []bool{true, true, true, true, true, true, true, true},
		Cutoff:        500,
		Q:             math.Sqrt2 / 2,
		Layout:        FilterShift,
		Damping:       0.05,
		Decay:         2.0,
		Seed:          synth.DefaultSeed,
	}
	switch kind {
	case KindSine:
		p.Freq = 440
	case KindMelody:
		p.Tracks = [][]float64{
			append([]float64(nil), Track1...),
			append([]float64(nil), Track2...),
		}
	case KindFilter:
		p.Freq = 500
	case KindKarplus, KindPolyBLEP:
		p.Freq = 220
	default:
		return nil, fmt.Errorf("unknown patch kind %q", kind)
	}
	return p, nil
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown patch kind %q (expected one of %v)", s, Kinds)
}

// Validate checks parameter ranges. Construction errors that depend on the
// sample rate (such as the delay-line capacity) are reported by Build.
func (p *Params) Validate() error {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}
	if p.AttackFrames <= 0 {
		return fmt.Errorf("attack_frames must be > 0")
	}
	if p.ReleaseFrames <= 0 {
		return fmt.Errorf("release_frames must be > 0")
	}
	if p.TailFrames < 0 {
		return fmt.Errorf("tail_frames must be >= 0")
	}
	if !(p.StepSeconds > 0) {
		return fmt.Errorf("step_seconds must be > 0")
	}
	switch p.Kind {
	case KindFilter, KindKarplus, KindPolyBLEP:
		if len(p.Steps) == 0 {
			return fmt.Errorf("steps must not be empty")
		}
	}
	switch p.Kind {
	case KindMelody:
		if len(p.Tracks) == 0 {
			return fmt.Errorf("melody needs at least one track")
		}
		for i, tr := range p.Tracks {
			for j, f := range tr {
				if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
					return fmt.Errorf("tracks[%d][%d] must be a frequency >= 0", i, j)
				}
			}
		}
	default:
		if !(p.Freq > 0) || math.IsInf(p.Freq, 0) {
			return fmt.Errorf("freq must be > 0")
		}
	}
	if p.Kind == KindFilter {
		if !(p.Cutoff > 0) {
			return fmt.Errorf("cutoff must be > 0")
		}
		if !(p.Q > 0) {
			return fmt.Errorf("q must be > 0")
		}
		if p.Layout != FilterShift && p.Layout != FilterRing {
			return fmt.Errorf("filter must be %q or %q", FilterShift, FilterRing)
		}
	}
	if p.Kind == KindKarplus {
		if p.Damping < 0 || p.Damping >= 1 {
			return fmt.Errorf("damping must be in [0,1)")
		}
		if !(p.Decay > 0) {
			return fmt.Errorf("decay must be > 0")
		}
	}
	return nil
}

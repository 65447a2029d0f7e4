package patch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/synth"
)

// Detail is a named value describing a built pipeline (printed by the CLI).
type Detail struct {
	Name  string
	Value string
}

// Pipeline is a ready-to-play signal tree.
type Pipeline struct {
	Signal synth.Signal
	// Frames is the exact number of samples Signal yields before ending.
	Frames  int
	Details []Detail
}

func (pl *Pipeline) detail(name, format string, args ...any) {
	pl.Details = append(pl.Details, Detail{Name: name, Value: fmt.Sprintf(format, args...)})
}

// Build constructs the signal tree described by p at the given sample rate.
func Build(p *Params, sampleRate int) (*Pipeline, error) {
	if p == nil {
		return nil, fmt.Errorf("nil params")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got %d", sampleRate)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	fs := float64(sampleRate)
	step := int(math.Round(p.StepSeconds * fs))
	if step <= 0 {
		return nil, fmt.Errorf("step_seconds %g is shorter than one frame", p.StepSeconds)
	}

	pl := &Pipeline{}
	var (
		body   synth.Signal
		frames int
		err    error
	)
	switch p.Kind {
	case KindSine:
		body, frames, err = buildSine(p, fs, step, pl)
	case KindMelody:
		body, frames, err = buildMelody(p, fs, step, pl)
	case KindFilter:
		body, frames, err = buildFilter(p, fs, step, pl)
	case KindKarplus:
		body, frames, err = buildKarplus(p, fs, step, pl)
	case KindPolyBLEP:
		body, frames, err = buildPolyBLEP(p, fs, step, pl)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", p.Kind, err)
	}

	pl.Signal = synth.NewChain(body, synth.NewSilence(p.TailFrames))
	pl.Frames = frames + p.TailFrames
	return pl, nil
}

func buildSine(p *Params, fs float64, step int, pl *Pipeline) (synth.Signal, int, error) {
	env, err := synth.NewEnvelope(step, p.AttackFrames, p.ReleaseFrames)
	if err != nil {
		return nil, 0, err
	}
	osc, err := synth.NewSine(fs, p.Freq)
	if err != nil {
		return nil, 0, err
	}
	pl.detail("frequency", "%g Hz", p.Freq)
	return synth.NewMultiply(osc, env), step, nil
}

func buildMelody(p *Params, fs float64, step int, pl *Pipeline) (synth.Signal, int, error) {
	var mix synth.Signal
	longest := 0
	for i, freqs := range p.Tracks {
		track, err := synth.NewTrack(freqs, step)
		if err != nil {
			return nil, 0, fmt.Errorf("track %d: %w", i, err)
		}
		// Rests keep the envelope closed so the held sine phase stays silent.
		gates := make([]bool, len(freqs))
		for j, f := range freqs {
			gates[j] = f > 0
		}
		env, err := synth.NewStepEnvelope(gates, step, p.AttackFrames, p.ReleaseFrames)
		if err != nil {
			return nil, 0, fmt.Errorf("track %d: %w", i, err)
		}
		osc, err := synth.NewSineFrom(fs, track)
		if err != nil {
			return nil, 0, fmt.Errorf("track %d: %w", i, err)
		}
		voice := synth.NewMultiply(osc, env)
		if mix == nil {
			mix = voice
		} else {
			mix = synth.NewAdd(mix, voice)
		}
		longest = max(longest, len(freqs))
	}
	frames := longest * step
	pl.detail("voices", "%d", len(p.Tracks))
	pl.detail("steps", "%d", longest)
	return synth.NewTake(mix, frames), frames, nil
}

func buildFilter(p *Params, fs float64, step int, pl *Pipeline) (synth.Signal, int, error) {
	src, err := synth.NewSquare(fs, p.Freq)
	if err != nil {
		return nil, 0, err
	}
	var lp synth.Signal
	if p.Layout == FilterRing {
		lp, err = synth.NewLowPassRing(src, fs, p.Cutoff, p.Q)
	} else {
		lp, err = synth.NewLowPass(src, fs, p.Cutoff, p.Q)
	}
	if err != nil {
		return nil, 0, err
	}
	env, err := synth.NewStepEnvelope(p.Steps, step, p.AttackFrames, p.ReleaseFrames)
	if err != nil {
		return nil, 0, err
	}
	frames := len(p.Steps) * step
	pl.detail("central frequency", "%g", p.Cutoff)
	pl.detail("Q", "%g", p.Q)
	pl.detail("filter", "%s", p.Layout)
	return synth.NewTake(synth.NewMultiply(lp, env), frames), frames, nil
}

func buildKarplus(p *Params, fs float64, step int, pl *Pipeline) (synth.Signal, int, error) {
	ks, err := synth.NewKarplusStrongWithExcitation(fs, p.Freq, p.Damping, p.Decay, synth.NewNoise(p.Seed))
	if err != nil {
		return nil, 0, err
	}
	frames := len(p.Steps) * step
	pl.detail("delay line length", "%d", ks.DelayLineLength())
	pl.detail("loop gain", "%.6f", ks.LoopGain())
	return synth.NewTake(ks, frames), frames, nil
}

func buildPolyBLEP(p *Params, fs float64, step int, pl *Pipeline) (synth.Signal, int, error) {
	env, err := synth.NewStepEnvelope(p.Steps, step, p.AttackFrames, p.ReleaseFrames)
	if err != nil {
		return nil, 0, err
	}
	frames := len(p.Steps) * step
	saw, err := synth.NewPolyBLEPSaw(fs, p.Freq)
	if err != nil {
		return nil, 0, err
	}
	pl.detail("frequency", "%g Hz", p.Freq)
	return synth.NewTake(synth.NewMultiply(saw, env), frames), frames, nil
}

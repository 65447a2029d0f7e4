package synth

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-synth/dsp"
)

type lowpassParams struct {
	sampleRate float64
	cutoff     float64
	q          float64
}

func newLowpassParams(sampleRate, cutoff, q float64) (lowpassParams, error) {
	p := lowpassParams{sampleRate: sampleRate, cutoff: cutoff, q: q}
	for _, v := range []float64{sampleRate, cutoff, q} {
		if !(v > 0) || math.IsInf(v, 0) {
			return p, fmt.Errorf("%w: fs=%g fc=%g q=%g", ErrInvalidFilter, sampleRate, cutoff, q)
		}
	}
	if cutoff >= sampleRate/2 {
		return p, fmt.Errorf("%w: cutoff %g Hz at or above Nyquist (%g Hz)", ErrInvalidFilter, cutoff, sampleRate/2)
	}
	return p, nil
}

// coeffs is evaluated on every sample; the coefficients are never cached.
func (p lowpassParams) coeffs() dsp.Coeffs {
	return dsp.LowpassCoeffs(p.sampleRate, p.cutoff, p.q)
}

// LowPass is a two-pole low-pass filter keeping its history in explicit
// shift registers x0..x2 and y0..y2. It ends when its input ends.
type LowPass struct {
	in     Signal
	params lowpassParams

	x0, x1, x2 float64
	y0, y1, y2 float64
	done       bool
}

// NewLowPass filters in with cutoff fc and quality q at sampling rate fs.
func NewLowPass(in Signal, fs, fc, q float64) (*LowPass, error) {
	p, err := newLowpassParams(fs, fc, q)
	if err != nil {
		return nil, fmt.Errorf("lowpass: %w", err)
	}
	return &LowPass{in: in, params: p}, nil
}

// Next implements Signal.
func (f *LowPass) Next() (float64, bool) {
	if f.done {
		return 0, false
	}
	x, ok := f.in.Next()
	if !ok {
		f.done = true
		return 0, false
	}

	f.x2 = f.x1
	f.x1 = f.x0
	f.x0 = x

	f.y2 = f.y1
	f.y1 = f.y0

	f.y0 = dspcore.FlushDenormals(f.params.coeffs().Apply(f.x0, f.x1, f.x2, f.y1, f.y2))
	return f.y0, true
}

// LowPassRing computes the same filter as LowPass but keeps only the last two
// inputs and outputs, each in a two-slot ring.
type LowPassRing struct {
	in     Signal
	params lowpassParams

	inputs  dsp.History
	outputs dsp.History
	done    bool
}

// NewLowPassRing filters in with cutoff fc and quality q at sampling rate fs.
func NewLowPassRing(in Signal, fs, fc, q float64) (*LowPassRing, error) {
	p, err := newLowpassParams(fs, fc, q)
	if err != nil {
		return nil, fmt.Errorf("lowpass ring: %w", err)
	}
	return &LowPassRing{in: in, params: p}, nil
}

// Next implements Signal.
func (f *LowPassRing) Next() (float64, bool) {
	if f.done {
		return 0, false
	}
	x, ok := f.in.Next()
	if !ok {
		f.done = true
		return 0, false
	}

	out := dspcore.FlushDenormals(f.params.coeffs().Apply(x, f.inputs.At(1), f.inputs.At(2), f.outputs.At(1), f.outputs.At(2)))
	f.inputs.Push(x)
	f.outputs.Push(out)
	return out, true
}

package synth

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-synth/dsp"
)

// KarplusStrong models a plucked string with a delay line, a first-order
// all-pass for the fractional part of the delay and a one-zero loop filter.
// The string is re-plucked with a burst of excitation once per second.
type KarplusStrong struct {
	frame      int
	cycle      int
	length     int
	loopGain   float64
	damping    float64
	excitation Signal

	delayLine *dsp.Ring
	allpass   dsp.Allpass
}

// NewKarplusStrong creates a string at f0 Hz. d is the loop filter's
// fractional delay offset in [0,1) and decay the time in seconds for the
// loop to lose 60 dB. Excitation is white noise seeded with DefaultSeed.
func NewKarplusStrong(fs, f0, d, decay float64) (*KarplusStrong, error) {
	return NewKarplusStrongWithExcitation(fs, f0, d, decay, NewNoise(DefaultSeed))
}

// NewKarplusStrongWithExcitation is like NewKarplusStrong but plucks the string
// with samples taken from excitation. excitation must not end.
func NewKarplusStrongWithExcitation(fs, f0, d, decay float64, excitation Signal) (*KarplusStrong, error) {
	if !(fs >= 1) || !(f0 > 0) || math.IsInf(fs, 0) || math.IsInf(f0, 0) {
		return nil, fmt.Errorf("karplus-strong: %w: fs=%g f0=%g", ErrInvalidFrequency, fs, f0)
	}
	if !(decay > 0) {
		return nil, fmt.Errorf("karplus-strong: decay must be > 0, got %g", decay)
	}
	if !(d >= 0 && d < 1) {
		return nil, fmt.Errorf("karplus-strong: fractional delay must be in [0,1), got %g", d)
	}

	delay := fs/f0 - d
	if delay < 0 {
		return nil, fmt.Errorf("karplus-strong: %w: f0=%g above fs=%g", ErrInvalidFrequency, f0, fs)
	}
	length := int(math.Floor(delay)) + 1
	if length > dsp.DelayCapacity {
		return nil, fmt.Errorf("karplus-strong: %w: %d > %d (fs=%g f0=%g d=%g)",
			ErrDelayTooLong, length, dsp.DelayCapacity, fs, f0, d)
	}
	e := delay - math.Floor(delay)
	g := (1 - e) / (1 + e)

	num := math.Pow(10, -3/f0/decay)
	den := math.Sqrt((1-d)*(1-d) + 2*d*(1-d)*math.Cos(2*math.Pi*f0/fs))
	c := clamp(num/den, 0, 1)
	if math.IsNaN(c) {
		return nil, fmt.Errorf("karplus-strong: %w: loop gain undefined for f0=%g d=%g", ErrInvalidFrequency, f0, d)
	}

	delayLine, err := dsp.NewRing(length)
	if err != nil {
		return nil, fmt.Errorf("karplus-strong: %w", err)
	}

	return &KarplusStrong{
		cycle:      int(fs),
		length:     length,
		loopGain:   c,
		damping:    d,
		excitation: excitation,
		delayLine:  delayLine,
		allpass:    dsp.Allpass{G: g},
	}, nil
}

// DelayLineLength returns the logical length of the delay line in samples.
func (k *KarplusStrong) DelayLineLength() int { return k.length }

// LoopGain returns the clamped loop gain c.
func (k *KarplusStrong) LoopGain() float64 { return k.loopGain }

// AllpassCoeff returns the fractional-delay all-pass coefficient g.
func (k *KarplusStrong) AllpassCoeff() float64 { return k.allpass.G }

// Next implements Signal. The signal never ends.
func (k *KarplusStrong) Next() (float64, bool) {
	k.frame++

	delayed, _ := k.delayLine.Pop()
	lastAllpassed := k.allpass.LastOut()
	allpassed := k.allpass.Process(delayed)

	var pluck float64
	if k.frame%k.cycle < k.length {
		pluck, _ = k.excitation.Next()
	}

	out := pluck + k.loopGain*((1-k.damping)*allpassed+k.damping*lastAllpassed)
	out = dspcore.FlushDenormals(out)
	k.delayLine.Push(out)
	return out, true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

package dsp

import (
	"errors"
	"fmt"
	"math"
)

// DelayCapacity is the fixed storage size of a Ring.
const DelayCapacity = 1024

// ErrCapacity is returned for a negative ring length or one above DelayCapacity.
var ErrCapacity = errors.New("invalid ring length")

// Ring is a bounded FIFO backed by a fixed array (no heap allocations in Push/Pop).
type Ring struct {
	buf   [DelayCapacity]float64
	start int
	n     int
}

// NewRing creates a ring pre-filled with length zeros.
func NewRing(length int) (*Ring, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}
	return &Ring{n: length}, nil
}

// Len returns the number of values currently queued.
func (r *Ring) Len() int { return r.n }

// Pop removes and returns the oldest value.
func (r *Ring) Pop() (float64, bool) {
	if r.n == 0 {
		return 0, false
	}
	x := r.buf[r.start]
	r.start = (r.start + 1) % DelayCapacity
	r.n--
	return x, true
}

// Push appends a value, overwriting the oldest one once the storage is full.
func (r *Ring) Push(x float64) {
	if r.n == DelayCapacity {
		r.buf[r.start] = x
		r.start = (r.start + 1) % DelayCapacity
		return
	}
	r.buf[(r.start+r.n)%DelayCapacity] = x
	r.n++
}

// Reset clears the ring and refills it with length zeros.
func (r *Ring) Reset(length int) error {
	if err := checkLength(length); err != nil {
		return err
	}
	r.buf = [DelayCapacity]float64{}
	r.start = 0
	r.n = length
	return nil
}

func checkLength(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrCapacity, length)
	}
	if length > DelayCapacity {
		return fmt.Errorf("%w: %d > %d", ErrCapacity, length, DelayCapacity)
	}
	return nil
}

// History keeps the two most recent values of a stream in a two-slot ring.
type History struct {
	buf  [2]float64
	head int
}

// At returns the value pushed lag steps ago (1 = most recent, 2 = the one before).
func (h *History) At(lag int) float64 {
	return h.buf[(h.head-(lag-1)+2)%2]
}

// Push records x as the most recent value, dropping the oldest.
func (h *History) Push(x float64) {
	h.head = (h.head + 1) % 2
	h.buf[h.head] = x
}

// Coeffs holds unnormalized biquad coefficients; A0 divides the whole sum.
type Coeffs struct {
	B0, B1, B2 float64
	A0, A1, A2 float64
}

// LowpassCoeffs derives two-pole low-pass coefficients for cutoff fc and quality q
// at sampling rate fs (c.f. the Audio EQ Cookbook).
func LowpassCoeffs(fs, fc, q float64) Coeffs {
	omega0 := 2 * math.Pi * fc / fs
	alpha := math.Sin(omega0) / 2 / q
	cosw0 := math.Cos(omega0)

	return Coeffs{
		B0: (1 - cosw0) / 2,
		B1: 1 - cosw0,
		B2: (1 - cosw0) / 2,
		A0: 1 + alpha,
		A1: -2 * cosw0,
		A2: 1 - alpha,
	}
}

// Apply evaluates the Direct Form I recurrence for the current input x0,
// the two prior inputs x1, x2 and the two prior outputs y1, y2.
func (c Coeffs) Apply(x0, x1, x2, y1, y2 float64) float64 {
	out := c.B0*x0 + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2
	return out / c.A0
}

// Allpass is a first-order all-pass section used for fractional-delay interpolation.
type Allpass struct {
	G float64

	lastIn  float64
	lastOut float64
}

// Process runs one sample through the section.
func (a *Allpass) Process(x float64) float64 {
	y := -a.G*a.lastOut + a.G*x + a.lastIn
	a.lastIn = x
	a.lastOut = y
	return y
}

// LastOut returns the previous output of the section.
func (a *Allpass) LastOut() float64 { return a.lastOut }

// Reset clears the section state.
func (a *Allpass) Reset() {
	a.lastIn, a.lastOut = 0, 0
}

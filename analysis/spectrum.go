package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// Spectrum is a Hann-windowed magnitude spectrum averaged over half-overlapping frames.
type Spectrum struct {
	Mag   []float64
	BinHz float64
}

// NewSpectrum analyzes x with frames of fftSize samples (a power of two).
// Signals shorter than one frame are zero-padded.
func NewSpectrum(x []float64, sampleRate int, fftSize int) (*Spectrum, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0")
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
	}
	spec := make([]complex128, fftSize/2+1)
	buf := make([]float64, fftSize)
	s := &Spectrum{
		Mag:   make([]float64, fftSize/2+1),
		BinHz: float64(sampleRate) / float64(fftSize),
	}

	frames := 0
	for pos := 0; pos == 0 || pos+fftSize <= len(x); pos += fftSize / 2 {
		for i := range buf {
			buf[i] = 0
			if pos+i < len(x) {
				buf[i] = x[pos+i] * hann[i]
			}
		}
		plan.Forward(spec, buf)
		for k := range s.Mag {
			s.Mag[k] += cmplx.Abs(spec[k])
		}
		frames++
	}
	scale := 1.0 / float64(frames)
	for k := range s.Mag {
		s.Mag[k] *= scale
	}
	return s, nil
}

func (s *Spectrum) binRange(loHz, hiHz float64) (int, int) {
	lo := int(math.Ceil(loHz / s.BinHz))
	hi := int(math.Floor(hiHz / s.BinHz))
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.Mag)-1 {
		hi = len(s.Mag) - 1
	}
	return lo, hi
}

// PeakFreq returns the centre frequency of the strongest bin in [loHz, hiHz].
func (s *Spectrum) PeakFreq(loHz, hiHz float64) float64 {
	lo, hi := s.binRange(loHz, hiHz)
	if lo > hi {
		return 0
	}
	best := lo
	for k := lo + 1; k <= hi; k++ {
		if s.Mag[k] > s.Mag[best] {
			best = k
		}
	}
	return float64(best) * s.BinHz
}

// BandEnergy returns the summed squared magnitude of the bins in [loHz, hiHz].
func (s *Spectrum) BandEnergy(loHz, hiHz float64) float64 {
	lo, hi := s.binRange(loHz, hiHz)
	var sum float64
	for k := lo; k <= hi; k++ {
		sum += s.Mag[k] * s.Mag[k]
	}
	return sum
}

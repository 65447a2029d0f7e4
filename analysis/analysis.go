package analysis

import (
	"errors"
	"math"
)

// DefaultFFTSize is the frame size used by Analyze.
const DefaultFFTSize = 4096

// Report contains level, pitch and spectral measurements of a rendered mono signal.
type Report struct {
	SampleRate int `json:"sample_rate"`
	Frames     int `json:"frames"`

	RMS            float64 `json:"rms"`
	Peak           float64 `json:"peak"`
	PeakHz         float64 `json:"peak_hz"`
	ZeroCrossingHz float64 `json:"zero_crossing_hz"`
	// DecayDBPerS is the level slope over the final release; 0 if none was found.
	DecayDBPerS    float64 `json:"decay_db_per_s"`
	HighBandRatio  float64 `json:"high_band_ratio"`
	NonFinite      int     `json:"non_finite"`
}

// Analyze measures x, rendered at sampleRate.
func Analyze(x []float64, sampleRate int) (Report, error) {
	r := Report{SampleRate: sampleRate, Frames: len(x)}
	if sampleRate <= 0 {
		return r, errors.New("sample rate must be > 0")
	}
	if len(x) == 0 {
		return r, nil
	}

	for _, v := range x {
		if !finite(v) {
			r.NonFinite++
			continue
		}
		if a := math.Abs(v); a > r.Peak {
			r.Peak = a
		}
	}
	r.RMS = RMS(x)
	r.ZeroCrossingHz = ZeroCrossingFreq(x, sampleRate)

	hop := sampleRate / 100
	if hop < 1 {
		hop = 1
	}
	if d := newLevelCurve(x, sampleRate, 2*hop, hop).releaseSlope(); finite(d) {
		r.DecayDBPerS = d
	}

	spec, err := NewSpectrum(x, sampleRate, DefaultFFTSize)
	if err != nil {
		return r, err
	}
	nyquist := float64(sampleRate) / 2
	r.PeakHz = spec.PeakFreq(20, nyquist)
	if total := spec.BandEnergy(0, nyquist); total > 0 {
		r.HighBandRatio = spec.BandEnergy(0.75*nyquist, nyquist) / total
	}
	return r, nil
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// ZeroCrossingFreq estimates the fundamental from the zero-crossing rate,
// skipping the first tenth of the signal.
func ZeroCrossingFreq(x []float64, sampleRate int) float64 {
	startIdx := len(x) / 10
	crossings := 0
	for i := startIdx + 1; i < len(x); i++ {
		if (x[i-1] < 0 && x[i] >= 0) || (x[i-1] >= 0 && x[i] < 0) {
			crossings++
		}
	}
	if crossings == 0 {
		return 0
	}
	duration := float64(len(x)-startIdx) / float64(sampleRate)
	return float64(crossings) / (2.0 * duration)
}

// silenceDB is the level reported for frames with no energy.
const silenceDB = -240.0

// levelCurve is a short-time RMS level in dBFS, one value per hop.
type levelCurve struct {
	db     []float64
	hopSec float64
}

func newLevelCurve(x []float64, sampleRate, frame, hop int) levelCurve {
	c := levelCurve{hopSec: float64(hop) / float64(sampleRate)}
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return c
	}
	c.db = make([]float64, 1+(len(x)-frame)/hop)
	for i := range c.db {
		rms := RMS(x[i*hop : i*hop+frame])
		if rms > 0 {
			c.db[i] = math.Max(20*math.Log10(rms), silenceDB)
		} else {
			c.db[i] = silenceDB
		}
	}
	return c
}

// releaseSlope fits the level in dB/s over the release segment: from the
// last frame within releaseKneeDB of the loudest frame until the level has
// dropped by decayRangeDB. Sustained plateaus before the release are
// therefore ignored. It returns NaN when the segment is too short.
func (c levelCurve) releaseSlope() float64 {
	const (
		releaseKneeDB = 3.0
		decayRangeDB  = 60.0
		minFrames     = 6
	)
	peak := math.Inf(-1)
	for _, v := range c.db {
		peak = math.Max(peak, v)
	}
	if !finite(peak) || peak <= silenceDB {
		return math.NaN()
	}

	start := -1
	for i, v := range c.db {
		if v >= peak-releaseKneeDB {
			start = i + 1
		}
	}
	end := len(c.db)
	for i := start; i < len(c.db); i++ {
		if c.db[i] < peak-decayRangeDB {
			end = i
			break
		}
	}
	if start < 0 || end-start < minFrames {
		return math.NaN()
	}
	return fitSlope(c.db[start:end], c.hopSec)
}

// fitSlope returns the least-squares slope of ys sampled every dx.
func fitSlope(ys []float64, dx float64) float64 {
	var sx, sy, sxx, sxy float64
	n := float64(len(ys))
	for i, y := range ys {
		x := float64(i) * dx
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

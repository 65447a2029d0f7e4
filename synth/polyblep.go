package synth

// PolyBLEPSaw is a falling sawtooth with polynomial band-limited step
// correction applied on the samples adjacent to each discontinuity.
type PolyBLEPSaw struct {
	phase     phase
	prevPhase float64
}

// NewPolyBLEPSaw creates a band-limited sawtooth at freq Hz.
func NewPolyBLEPSaw(sampleRate, freq float64) (*PolyBLEPSaw, error) {
	if err := checkOsc("polyblep saw", sampleRate, freq); err != nil {
		return nil, err
	}
	return &PolyBLEPSaw{phase: newPhase(sampleRate, freq)}, nil
}

// Next implements Signal.
func (s *PolyBLEPSaw) Next() (float64, bool) {
	ph := s.phase.advance()
	out := naiveSaw(ph) + blepResidual(ph, s.prevPhase)
	s.prevPhase = ph
	return out, true
}

// blepResidual returns the correction for phase ph given the previous phase.
// A phase that did not increase is assumed to have wrapped at 1.
func blepResidual(ph, prev float64) float64 {
	var delta float64
	if ph > prev {
		delta = ph - prev
	} else {
		delta = 1 + ph - prev
	}

	switch {
	case ph < delta:
		t := ph / delta
		return -t*t + 2*t - 1
	case ph > 1-delta:
		t := (ph - 1) / delta
		return t*t + 2*t + 1
	}
	return 0
}

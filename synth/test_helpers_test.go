package synth

import "testing"

// constant is an infinite signal repeating one value.
type constant float64

func (c constant) Next() (float64, bool) { return float64(c), true }

// slice plays back fixed samples once.
type slice struct {
	data []float64
	pos  int
}

func (s *slice) Next() (float64, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	x := s.data[s.pos]
	s.pos++
	return x, true
}

func collect(t *testing.T, s Signal, n int) []float64 {
	t.Helper()
	out := Drain(s, n)
	if len(out) != n {
		t.Fatalf("signal ended early: got %d samples, want %d", len(out), n)
	}
	return out
}

func assertEnded(t *testing.T, s Signal) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if x, ok := s.Next(); ok {
			t.Fatalf("expected end of signal, got sample %f", x)
		}
	}
}

func mustEnvelope(t *testing.T, total, attack, release int) *Envelope {
	t.Helper()
	e, err := NewEnvelope(total, attack, release)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return e
}

func mustStepEnvelope(t *testing.T, steps []bool, stepLength, attack, release int) *StepEnvelope {
	t.Helper()
	e, err := NewStepEnvelope(steps, stepLength, attack, release)
	if err != nil {
		t.Fatalf("NewStepEnvelope: %v", err)
	}
	return e
}

func mustSine(t *testing.T, sampleRate, freq float64) *Sine {
	t.Helper()
	s, err := NewSine(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewSine: %v", err)
	}
	return s
}

func mustSquare(t *testing.T, sampleRate, freq float64) *Square {
	t.Helper()
	s, err := NewSquare(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewSquare: %v", err)
	}
	return s
}

func mustSaw(t *testing.T, sampleRate, freq float64) *Saw {
	t.Helper()
	s, err := NewSaw(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewSaw: %v", err)
	}
	return s
}

func mustSineFrom(t *testing.T, sampleRate float64, freq Signal) *SineFrom {
	t.Helper()
	s, err := NewSineFrom(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewSineFrom: %v", err)
	}
	return s
}

func mustPolyBLEPSaw(t *testing.T, sampleRate, freq float64) *PolyBLEPSaw {
	t.Helper()
	s, err := NewPolyBLEPSaw(sampleRate, freq)
	if err != nil {
		t.Fatalf("NewPolyBLEPSaw: %v", err)
	}
	return s
}

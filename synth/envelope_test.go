package synth

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestEnvelopeOneSecondAt48k(t *testing.T) {
	const total = 48000
	samples := collect(t, mustEnvelope(t, total, 1000, 1000), total)

	tests := []struct {
		frame int
		want  float64
	}{
		{1, 0.001},
		{500, 0.5},
		{1000, 1.0},
		{1001, 1.0},
		{24000, 1.0},
		{47000, 1.0},
		{47001, 0.999},
		{47999, 0.001},
		{48000, 0.0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("Frame%d", tt.frame), func(t *testing.T) {
			got := samples[tt.frame-1]
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("envelope(%d) = %f, want %f", tt.frame, got, tt.want)
			}
		})
	}
}

func TestEnvelopeEndsAfterTotalFrames(t *testing.T) {
	e := mustEnvelope(t, 48000, 1000, 1000)
	collect(t, e, 48000)
	assertEnded(t, e)
}

func TestEnvelopeReleaseWinsOverAttack(t *testing.T) {
	// attack + release > total: release starts at frame 7, before the attack ends at frame 8.
	samples := collect(t, mustEnvelope(t, 10, 8, 4), 10)
	want := []float64{1.0 / 8, 2.0 / 8, 3.0 / 8, 4.0 / 8, 5.0 / 8, 6.0 / 8, 3.0 / 4, 2.0 / 4, 1.0 / 4, 0}
	for i := range want {
		if math.Abs(samples[i]-want[i]) > 1e-12 {
			t.Fatalf("frame %d: got=%f want=%f", i+1, samples[i], want[i])
		}
	}
}

func TestEnvelopeRejectsZeroLengths(t *testing.T) {
	tests := []struct {
		name                   string
		total, attack, release int
	}{
		{"ZeroTotal", 0, 10, 10},
		{"ZeroAttack", 100, 0, 10},
		{"ZeroRelease", 100, 10, 0},
		{"NegativeAttack", 100, -1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEnvelope(tt.total, tt.attack, tt.release); !errors.Is(err, ErrZeroLength) {
				t.Fatalf("expected ErrZeroLength, got %v", err)
			}
		})
	}
	if _, err := NewStepEnvelope([]bool{true}, 0, 1, 1); !errors.Is(err, ErrZeroLength) {
		t.Fatalf("expected ErrZeroLength for zero step length, got %v", err)
	}
}

func TestStepEnvelopeAllOffIsSilent(t *testing.T) {
	const stepLength = 480
	steps := make([]bool, 8)
	e := mustStepEnvelope(t, steps, stepLength, 100, 100)
	for i, x := range collect(t, e, stepLength*len(steps)) {
		if x != 0 {
			t.Fatalf("sample %d: expected silence, got %f", i, x)
		}
	}
}

func TestStepEnvelopeAllOnRepeatsContour(t *testing.T) {
	const (
		stepLength = 480
		numSteps   = 8
		attack     = 100
		release    = 100
	)
	steps := []bool{true, true, true, true, true, true, true, true}
	e := mustStepEnvelope(t, steps, stepLength, attack, release)
	samples := collect(t, e, stepLength*numSteps)

	oneShot := collect(t, mustEnvelope(t, stepLength, attack, release), stepLength)
	for step := 0; step < numSteps; step++ {
		for i := 0; i < stepLength; i++ {
			got := samples[step*stepLength+i]
			if got != oneShot[i] {
				t.Fatalf("step %d frame %d: got=%f want=%f", step, i+1, got, oneShot[i])
			}
		}
	}
}

func TestStepEnvelopeConsumesStepsFromTail(t *testing.T) {
	const stepLength = 10
	// The last entry plays first: off, then on, then the sequence is exhausted.
	e := mustStepEnvelope(t, []bool{true, false}, stepLength, 2, 2)
	samples := collect(t, e, 4*stepLength)

	for i := 0; i < stepLength; i++ {
		if samples[i] != 0 {
			t.Fatalf("first step should be off, frame %d = %f", i+1, samples[i])
		}
	}
	if samples[stepLength+4] != 1 {
		t.Fatalf("second step should sustain at 1, got %f", samples[stepLength+4])
	}
	for i := 2 * stepLength; i < len(samples); i++ {
		if samples[i] != 0 {
			t.Fatalf("exhausted sequence should be off, frame %d = %f", i+1, samples[i])
		}
	}
}

func TestStepEnvelopeDoesNotMutateInput(t *testing.T) {
	steps := []bool{true, false, true}
	e := mustStepEnvelope(t, steps, 4, 1, 1)
	collect(t, e, 40)
	if len(steps) != 3 || !steps[0] || steps[1] || !steps[2] {
		t.Fatalf("input steps were modified: %v", steps)
	}
}

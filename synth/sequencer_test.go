package synth

import (
	"errors"
	"testing"
)

func TestTrackPlaysStepsInReverse(t *testing.T) {
	const stepLength = 3
	tr, err := NewTrack([]float64{440, 0, 220}, stepLength)
	if err != nil {
		t.Fatalf("NewTrack: %v", err)
	}
	got := collect(t, tr, 5*stepLength)
	want := []float64{
		220, 220, 220,
		0, 0, 0,
		440, 440, 440,
		0, 0, 0,
		0, 0, 0,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: got=%f want=%f", i+1, got[i], want[i])
		}
	}
}

func TestTrackEmptySequenceIsRest(t *testing.T) {
	tr, err := NewTrack(nil, 10)
	if err != nil {
		t.Fatalf("NewTrack: %v", err)
	}
	for i, f := range collect(t, tr, 100) {
		if f != 0 {
			t.Fatalf("frame %d: expected rest, got %f", i+1, f)
		}
	}
}

func TestTrackRejectsInvalidInput(t *testing.T) {
	if _, err := NewTrack([]float64{440}, 0); !errors.Is(err, ErrZeroLength) {
		t.Fatalf("expected ErrZeroLength, got %v", err)
	}
	if _, err := NewTrack([]float64{440, -1}, 10); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestStepperHandlesStepLengthOne(t *testing.T) {
	s := newStepper([]int{3, 2, 1}, 1)
	var got []int
	for i := 0; i < 5; i++ {
		got = append(got, s.advance())
	}
	want := []int{1, 2, 3, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: got=%d want=%d", i, got[i], want[i])
		}
	}
}

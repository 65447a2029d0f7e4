//go:build headless

package output

import (
	"context"
	"testing"
	"time"
)

func TestHeadlessDeviceDrainsToCompletion(t *testing.T) {
	format := mustFormat(t, 48000, 2, Float32LE)
	dev, err := Open(format)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dev.Close()

	done := NewCompletion()
	s, err := NewStream(&slice{data: make([]float64, 5000)}, format, done)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if err := dev.Play(s); err != nil {
		t.Fatalf("Play: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := done.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	dev.Pause()
	if s.Frames() != 5000 {
		t.Fatalf("frames: got=%d want=5000", s.Frames())
	}
	if err := dev.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
}

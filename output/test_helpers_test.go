package output

import (
	"encoding/binary"
	"math"
	"testing"
)

// slice yields its samples once, then ends.
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

func mustFormat(t *testing.T, sampleRate, channels int, sample SampleFormat) Format {
	t.Helper()
	f, err := NewFormat(sampleRate, channels, sample)
	if err != nil {
		t.Fatalf("NewFormat: %v", err)
	}
	return f
}

func decodeFloat32(b []byte) []float64 {
	out := make([]float64, len(b)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])))
	}
	return out
}

package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"
)

func TestEncodeFloat32(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{-0.25, -0.25},
		{1.5, 1},
		{-3, -1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("in=%g", tc.in), func(t *testing.T) {
			var b [4]byte
			if n := Encode(b[:], tc.in, Float32LE); n != 4 {
				t.Fatalf("wrote %d bytes", n)
			}
			got := float64(math.Float32frombits(binary.LittleEndian.Uint32(b[:])))
			if got != tc.want {
				t.Fatalf("got=%g want=%g", got, tc.want)
			}
		})
	}
}

func TestEncodeInt16(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{0.5, 16384},
	}
	for _, tc := range tests {
		var b [2]byte
		if n := Encode(b[:], tc.in, Int16LE); n != 2 {
			t.Fatalf("wrote %d bytes", n)
		}
		if got := int16(binary.LittleEndian.Uint16(b[:])); got != tc.want {
			t.Fatalf("Encode(%g): got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestEncodeUint8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 128},
		{1, 255},
		{-1, 1},
		{-5, 1},
	}
	for _, tc := range tests {
		var b [1]byte
		Encode(b[:], tc.in, Uint8)
		if b[0] != tc.want {
			t.Fatalf("Encode(%g): got=%d want=%d", tc.in, b[0], tc.want)
		}
	}
}

func TestParseSampleFormat(t *testing.T) {
	for _, f := range []SampleFormat{Float32LE, Int16LE, Uint8} {
		got, err := ParseSampleFormat(f.String())
		if err != nil || got != f {
			t.Fatalf("ParseSampleFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseSampleFormat("s24"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestNewFormatValidates(t *testing.T) {
	f := mustFormat(t, 48000, 2, Int16LE)
	if f.BytesPerFrame() != 4 {
		t.Fatalf("bytes per frame: got=%d want=4", f.BytesPerFrame())
	}
	bad := []struct {
		rate, channels int
		sample         SampleFormat
	}{
		{0, 1, Float32LE},
		{48000, 0, Float32LE},
		{48000, 1, SampleFormat(9)},
	}
	for _, tc := range bad {
		if _, err := NewFormat(tc.rate, tc.channels, tc.sample); err == nil {
			t.Fatalf("expected error for %+v", tc)
		}
	}
}

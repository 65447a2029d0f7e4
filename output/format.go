// Package output plays signals on an audio device: it encodes samples,
// fans a mono signal out to every channel and reports when playback of a
// finite signal has finished.
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/go-audio/audio"
)

// SampleFormat is the device sample encoding.
type SampleFormat int

const (
	Float32LE SampleFormat = iota
	Int16LE
	Uint8
)

// Size returns the number of bytes of one encoded sample.
func (f SampleFormat) Size() int {
	switch f {
	case Float32LE:
		return 4
	case Int16LE:
		return 2
	case Uint8:
		return 1
	}
	return 0
}

// BitDepth returns the number of bits of one encoded sample.
func (f SampleFormat) BitDepth() int { return 8 * f.Size() }

func (f SampleFormat) String() string {
	switch f {
	case Float32LE:
		return "f32"
	case Int16LE:
		return "s16"
	case Uint8:
		return "u8"
	}
	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// ParseSampleFormat accepts "f32", "s16" or "u8".
func ParseSampleFormat(s string) (SampleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f32", "float32":
		return Float32LE, nil
	case "s16", "int16":
		return Int16LE, nil
	case "u8", "uint8":
		return Uint8, nil
	}
	return 0, fmt.Errorf("unknown sample format %q (expected f32, s16 or u8)", s)
}

// Format describes the stream negotiated with the device.
type Format struct {
	audio.Format
	Sample SampleFormat
}

// NewFormat validates and returns a stream format.
func NewFormat(sampleRate, channels int, sample SampleFormat) (Format, error) {
	f := Format{
		Format: audio.Format{SampleRate: sampleRate, NumChannels: channels},
		Sample: sample,
	}
	return f, f.Validate()
}

// Validate reports whether the format can be streamed.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d", f.SampleRate)
	}
	if f.NumChannels <= 0 {
		return fmt.Errorf("channel count must be > 0, got %d", f.NumChannels)
	}
	if f.Sample.Size() == 0 {
		return fmt.Errorf("unsupported sample format %v", f.Sample)
	}
	return nil
}

// BytesPerFrame is the size of one interleaved frame.
func (f Format) BytesPerFrame() int { return f.NumChannels * f.Sample.Size() }

// Encode writes x into dst in the given encoding and returns the number of
// bytes written. Values are clamped to [-1, 1] here and nowhere else; NaN
// encodes as silence. dst must hold at least f.Size() bytes.
func Encode(dst []byte, x float64, f SampleFormat) int {
	x = clampUnit(x)
	switch f {
	case Float32LE:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(x)))
		return 4
	case Int16LE:
		binary.LittleEndian.PutUint16(dst, uint16(int16(math.Round(x*math.MaxInt16))))
		return 2
	case Uint8:
		dst[0] = uint8(math.Round(x*127) + 128)
		return 1
	}
	return 0
}

func clampUnit(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < -1:
		return -1
	case x > 1:
		return 1
	}
	return x
}

package output

import (
	"fmt"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-synth/synth"
)

// Render pulls at most maxFrames frames from sig into an interleaved buffer,
// replicating each sample on every channel. It stops when sig ends.
func Render(sig synth.Signal, format Format, maxFrames int) (*audio.Float32Buffer, error) {
	if sig == nil {
		return nil, fmt.Errorf("nil signal")
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if maxFrames < 0 {
		return nil, fmt.Errorf("max frames must be >= 0, got %d", maxFrames)
	}

	channels := format.NumChannels
	data := make([]float32, 0, maxFrames*channels)
	for frame := 0; frame < maxFrames; frame++ {
		x, ok := sig.Next()
		if !ok {
			break
		}
		for ch := 0; ch < channels; ch++ {
			data = append(data, float32(x))
		}
	}

	return &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  format.SampleRate,
			NumChannels: channels,
		},
		Data:           data,
		SourceBitDepth: format.Sample.BitDepth(),
	}, nil
}

// Channel extracts one channel of an interleaved buffer.
func Channel(buf *audio.Float32Buffer, ch int) ([]float64, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("buffer has no format")
	}
	channels := buf.Format.NumChannels
	if ch < 0 || ch >= channels {
		return nil, fmt.Errorf("channel %d out of range [0,%d)", ch, channels)
	}
	out := make([]float64, 0, len(buf.Data)/channels)
	for i := ch; i < len(buf.Data); i += channels {
		out = append(out, float64(buf.Data[i]))
	}
	return out, nil
}

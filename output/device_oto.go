//go:build !headless

package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultLatency is the device buffer duration requested from the driver.
const DefaultLatency = 50 * time.Millisecond

// Device plays a byte stream on the default audio output.
//
// The underlying driver context can be created only once per process, so a
// program opens a single Device.
type Device struct {
	ctx    *oto.Context
	format Format

	mu     sync.Mutex
	player *oto.Player
}

// Open negotiates format with the default output device.
func Open(format Format) (*Device, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	var sample oto.Format
	switch format.Sample {
	case Float32LE:
		sample = oto.FormatFloat32LE
	case Int16LE:
		sample = oto.FormatSignedInt16LE
	case Uint8:
		sample = oto.FormatUnsignedInt8
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.NumChannels,
		Format:       sample,
		BufferSize:   DefaultLatency,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	return &Device{ctx: ctx, format: format}, nil
}

// Format returns the negotiated format.
func (d *Device) Format() Format { return d.format }

// Play starts pulling r on the driver's thread. A previous player is closed.
func (d *Device) Play(r io.Reader) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player != nil {
		if err := d.player.Close(); err != nil {
			return fmt.Errorf("close previous player: %w", err)
		}
	}
	d.player = d.ctx.NewPlayer(r)
	d.player.Play()
	return nil
}

// Pause stops pulling without releasing the player.
func (d *Device) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player != nil {
		d.player.Pause()
	}
}

// Err reports an error raised by the driver while playing, if any.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	return d.player.Err()
}

// Close releases the player.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	return err
}

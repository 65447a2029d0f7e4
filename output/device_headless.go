//go:build headless

package output

import (
	"errors"
	"io"
	"sync"
)

// Device is the no-device backend: Play drains the reader on a goroutine
// as fast as it can, so completion arrives without real-time pacing.
type Device struct {
	format Format

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
	err  error
}

// Open returns a device that discards audio.
func Open(format Format) (*Device, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	return &Device{format: format}, nil
}

// Format returns the negotiated format.
func (d *Device) Format() Format { return d.format }

// Play starts draining r. A previous drain is stopped first.
func (d *Device) Play(r io.Reader) error {
	d.Pause()

	d.mu.Lock()
	defer d.mu.Unlock()
	stop := make(chan struct{})
	d.stop = stop
	d.err = nil
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		buf := make([]byte, 1024*d.format.BytesPerFrame())
		for {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := r.Read(buf); err != nil {
				if !errors.Is(err, io.EOF) {
					d.mu.Lock()
					d.err = err
					d.mu.Unlock()
				}
				return
			}
		}
	}()
	return nil
}

// Pause stops draining and waits for the drain goroutine to exit.
func (d *Device) Pause() {
	d.mu.Lock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Err reports a read error raised while draining, if any.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Close stops draining.
func (d *Device) Close() error {
	d.Pause()
	return nil
}

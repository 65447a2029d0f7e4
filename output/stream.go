package output

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/cwbudde/algo-synth/synth"
)

// Stream adapts a mono Signal to the byte stream pulled by a device. Each
// frame pulls one sample and writes it to every channel. Once the signal
// ends the stream keeps producing silence and notifies its Completion.
//
// Read does not allocate. A Stream must be read by one goroutine at a time.
type Stream struct {
	sig    synth.Signal
	format Format
	done   *Completion

	ended  atomic.Bool
	frames atomic.Int64
}

// NewStream returns a stream of sig in the given format. done may be nil.
func NewStream(sig synth.Signal, format Format, done *Completion) (*Stream, error) {
	if sig == nil {
		return nil, fmt.Errorf("nil signal")
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	return &Stream{sig: sig, format: format, done: done}, nil
}

// Format returns the stream format.
func (s *Stream) Format() Format { return s.format }

// Frames returns the number of signal frames delivered so far, not counting
// the trailing silence.
func (s *Stream) Frames() int64 { return s.frames.Load() }

// Ended reports whether the signal has been exhausted.
func (s *Stream) Ended() bool { return s.ended.Load() }

// Read implements io.Reader. It fills whole frames only and never returns
// io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	bpf := s.format.BytesPerFrame()
	n := len(p) / bpf
	if n == 0 {
		return 0, io.ErrShortBuffer
	}

	size := s.format.Sample.Size()
	off := 0
	var delivered int64
	for i := 0; i < n; i++ {
		var x float64
		if !s.ended.Load() {
			v, ok := s.sig.Next()
			if ok {
				x = v
				delivered++
			} else {
				s.ended.Store(true)
				if s.done != nil {
					s.done.Notify()
				}
			}
		}
		for ch := 0; ch < s.format.NumChannels; ch++ {
			Encode(p[off:off+size], x, s.format.Sample)
			off += size
		}
	}
	s.frames.Add(delivered)
	return off, nil
}

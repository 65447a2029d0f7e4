package output

import "context"

// Completion is a one-shot "playback finished" notifier. Notify never
// blocks; only the first pending notification is kept.
type Completion struct {
	ch chan struct{}
}

// NewCompletion returns an armed notifier.
func NewCompletion() *Completion {
	return &Completion{ch: make(chan struct{}, 1)}
}

// Notify signals completion. Safe to call from the audio thread.
func (c *Completion) Notify() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

// Done returns the channel receiving the notification.
func (c *Completion) Done() <-chan struct{} { return c.ch }

// Wait blocks until completion is signalled or ctx is done. A successful
// Wait consumes the notification.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

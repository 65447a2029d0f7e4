package synth

// Multiply is the per-sample product of two signals (amplitude modulation).
// It ends as soon as either operand ends.
type Multiply struct {
	a, b Signal
	done bool
}

// NewMultiply returns a * b.
func NewMultiply(a, b Signal) *Multiply {
	return &Multiply{a: a, b: b}
}

// Next implements Signal.
func (m *Multiply) Next() (float64, bool) {
	if m.done {
		return 0, false
	}
	x, okA := m.a.Next()
	y, okB := m.b.Next()
	if !okA || !okB {
		m.done = true
		return 0, false
	}
	return x * y, true
}

// Add is the per-sample sum of two signals (mixing). It ends as soon as either operand ends.
type Add struct {
	a, b Signal
	done bool
}

// NewAdd returns a + b.
func NewAdd(a, b Signal) *Add {
	return &Add{a: a, b: b}
}

// Next implements Signal.
func (m *Add) Next() (float64, bool) {
	if m.done {
		return 0, false
	}
	x, okA := m.a.Next()
	y, okB := m.b.Next()
	if !okA || !okB {
		m.done = true
		return 0, false
	}
	return x + y, true
}

// Take truncates a signal to its first n samples.
type Take struct {
	src       Signal
	remaining int
}

// NewTake returns the first n samples of src.
func NewTake(src Signal, n int) *Take {
	if n < 0 {
		n = 0
	}
	return &Take{src: src, remaining: n}
}

// Next implements Signal.
func (t *Take) Next() (float64, bool) {
	if t.remaining == 0 {
		return 0, false
	}
	x, ok := t.src.Next()
	if !ok {
		t.remaining = 0
		return 0, false
	}
	t.remaining--
	return x, true
}

// Chain plays b after a has ended.
type Chain struct {
	a, b  Signal
	onB   bool
	ended bool
}

// NewChain concatenates a and b.
func NewChain(a, b Signal) *Chain {
	return &Chain{a: a, b: b}
}

// Next implements Signal.
func (c *Chain) Next() (float64, bool) {
	if c.ended {
		return 0, false
	}
	if !c.onB {
		if x, ok := c.a.Next(); ok {
			return x, true
		}
		c.onB = true
	}
	x, ok := c.b.Next()
	if !ok {
		c.ended = true
		return 0, false
	}
	return x, true
}

// Silence outputs n zeros. Appending it to a pipeline avoids a click at the end of playback.
type Silence struct {
	remaining int
}

// NewSilence returns n zero samples.
func NewSilence(n int) *Silence {
	if n < 0 {
		n = 0
	}
	return &Silence{remaining: n}
}

// Next implements Signal.
func (s *Silence) Next() (float64, bool) {
	if s.remaining == 0 {
		return 0, false
	}
	s.remaining--
	return 0, true
}

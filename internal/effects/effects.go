// Package effects colors the synth's mixed output one stereo frame at a time.
// Apply wraps any beep.Streamer so effects sit in the stream graph like the
// rest of beep's combinators.
package effects

import "github.com/gopxl/beep"

// Effector transforms one stereo frame and keeps whatever state it needs
// between frames.
type Effector interface {
	Process(frame [2]float64) [2]float64
	Reset()
}

// Chain applies a sequence of effects in order.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

func (c *Chain) Process(frame [2]float64) [2]float64 {
	for _, e := range c.effects {
		frame = e.Process(frame)
	}
	return frame
}

func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}

func (c *Chain) Len() int { return len(c.effects) }

// Apply returns a streamer that runs every frame of s through e.
func Apply(s beep.Streamer, e Effector) beep.Streamer {
	return &streamer{src: s, fx: e}
}

type streamer struct {
	src beep.Streamer
	fx  Effector
}

func (s *streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	for i := range samples[:n] {
		samples[i] = s.fx.Process(samples[i])
	}
	return n, ok
}

func (s *streamer) Err() error { return s.src.Err() }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

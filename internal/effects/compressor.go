package effects

import (
	"math"

	"github.com/gopxl/beep"
)

// Limiter is a linked-stereo compressor. It keeps a pile of overlapping
// tones from clipping when a child mashes the screen.
type Limiter struct {
	threshold float64
	ratio     float64
	attack    float64
	release   float64
	env       float64
}

// NewLimiter creates a limiter. thresholdDB is where gain reduction begins
// (e.g. -6), ratio is the compression above it (e.g. 8 for 8:1).
func NewLimiter(rate beep.SampleRate, thresholdDB, ratio, attackMs, releaseMs float64) *Limiter {
	return &Limiter{
		threshold: math.Pow(10, thresholdDB/20),
		ratio:     math.Max(ratio, 1),
		attack:    coefficient(rate, attackMs),
		release:   coefficient(rate, releaseMs),
	}
}

// coefficient is the one-pole smoothing factor for a time constant.
func coefficient(rate beep.SampleRate, ms float64) float64 {
	n := ms * float64(rate) / 1000
	if n <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/n)
}

func (c *Limiter) Process(in [2]float64) [2]float64 {
	peak := math.Max(math.Abs(in[0]), math.Abs(in[1]))
	if peak > c.env {
		c.env += c.attack * (peak - c.env)
	} else {
		c.env += c.release * (peak - c.env)
	}
	g := c.gain()
	return [2]float64{in[0] * g, in[1] * g}
}

func (c *Limiter) gain() float64 {
	if c.env <= c.threshold || c.threshold <= 0 {
		return 1
	}
	return math.Pow(c.env/c.threshold, 1/c.ratio-1)
}

func (c *Limiter) Reset() { c.env = 0 }

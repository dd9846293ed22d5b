package effects

import (
	"github.com/gopxl/beep"

	"github.com/cbegin/tinytaps-go/internal/lfo"
)

// Tremolo wobbles the level with a triangle LFO.
type Tremolo struct {
	lfo   *lfo.LFO
	rate  float64
	depth float64
}

// NewTremolo dips the gain by up to depth, in [0, 1], hz times a second.
func NewTremolo(rate beep.SampleRate, hz, depth float64) *Tremolo {
	return &Tremolo{
		lfo:   lfo.New(hz, 1, lfo.Triangle, nil),
		rate:  float64(rate),
		depth: clamp(depth, 0, 1),
	}
}

func (t *Tremolo) Process(in [2]float64) [2]float64 {
	gain := 1 - t.depth*(t.lfo.Sample(t.rate)+1)/2
	return [2]float64{in[0] * gain, in[1] * gain}
}

func (t *Tremolo) Reset() { t.lfo.Reset() }

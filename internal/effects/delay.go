package effects

import "github.com/gopxl/beep"

// Echo repeats the signal after a fixed delay, feeding part of each repeat
// back in and optionally bouncing it between channels.
type Echo struct {
	buf      [][2]float64
	pos      int
	feedback float64
	cross    float64
	wet      float64
}

// NewEcho creates an echo of delayMs milliseconds. feedback is capped at
// 0.95 so the tail always dies out. cross and wet are in [0, 1].
func NewEcho(rate beep.SampleRate, delayMs, feedback, cross, wet float64) *Echo {
	n := int(delayMs * float64(rate) / 1000)
	if n < 1 {
		n = 1
	}
	return &Echo{
		buf:      make([][2]float64, n),
		feedback: clamp(feedback, 0, 0.95),
		cross:    clamp(cross, 0, 1),
		wet:      clamp(wet, 0, 1),
	}
}

func (d *Echo) Process(in [2]float64) [2]float64 {
	del := d.buf[d.pos]
	straight, swapped := d.feedback*(1-d.cross), d.feedback*d.cross
	d.buf[d.pos] = [2]float64{
		in[0] + del[0]*straight + del[1]*swapped,
		in[1] + del[1]*straight + del[0]*swapped,
	}
	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
	return [2]float64{
		in[0]*(1-d.wet) + del[0]*d.wet,
		in[1]*(1-d.wet) + del[1]*d.wet,
	}
}

func (d *Echo) Reset() {
	clear(d.buf)
	d.pos = 0
}

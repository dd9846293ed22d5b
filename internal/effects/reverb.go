package effects

import "github.com/gopxl/beep"

// Room is a small Schroeder reverb: four parallel combs into two allpasses,
// run on the mono sum.
type Room struct {
	combs   [4]delayLine
	allpass [2]delayLine
	wet     float64
}

type delayLine struct {
	buf []float64
	pos int
	fb  float64
}

// NewRoom creates a reverb. size in [0, 1] scales the delay lengths and
// decay in [0, 0.95] sets how long the tail rings.
func NewRoom(rate beep.SampleRate, size, decay, wet float64) *Room {
	base := max(int(float64(rate)*size*0.05), 10)
	fb := clamp(decay, 0, 0.95)
	r := &Room{wet: clamp(wet, 0, 1)}
	// Mutually prime-ish lengths keep the combs from ringing together.
	for i, ratio := range [4]int{1000, 1117, 1271, 1437} {
		r.combs[i] = delayLine{buf: make([]float64, base*ratio/1000), fb: fb}
	}
	for i, ratio := range [2]int{347, 213} {
		r.allpass[i] = delayLine{buf: make([]float64, max(base*ratio/1000, 1)), fb: 0.5}
	}
	return r
}

func (r *Room) Process(in [2]float64) [2]float64 {
	mono := (in[0] + in[1]) * 0.5
	var out float64
	for i := range r.combs {
		out += r.combs[i].comb(mono)
	}
	out *= 0.25
	for i := range r.allpass {
		out = r.allpass[i].allpass(out)
	}
	return [2]float64{
		in[0]*(1-r.wet) + out*r.wet,
		in[1]*(1-r.wet) + out*r.wet,
	}
}

func (r *Room) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
}

func (d *delayLine) comb(in float64) float64 {
	out := d.buf[d.pos]
	d.buf[d.pos] = in + out*d.fb
	d.advance()
	return out
}

func (d *delayLine) allpass(in float64) float64 {
	held := d.buf[d.pos]
	d.buf[d.pos] = in + held*d.fb
	d.advance()
	return held - in
}

func (d *delayLine) advance() {
	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
}

func (d *delayLine) reset() {
	clear(d.buf)
	d.pos = 0
}

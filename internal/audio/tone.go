package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// oscillator produces the non-sine waveforms at unit amplitude.
type oscillator struct {
	phase float64
	step  float64
	wave  Waveform
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Triangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		}
		samples[i] = [2]float64{v, v}
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// tone shapes src with a linear attack up to peakGain followed by an
// exponential fall to tailGain at the last sample, then drains.
type tone struct {
	src    beep.Streamer
	pos    int
	total  int
	attack int
}

// level is the envelope gain at sample pos.
func (t *tone) level(pos int) float64 {
	if pos < t.attack {
		return peakGain * float64(pos) / float64(t.attack)
	}
	span := t.total - t.attack
	if span <= 0 {
		return peakGain
	}
	return peakGain * math.Pow(tailGain/peakGain, float64(pos-t.attack)/float64(span))
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	left := t.total - t.pos
	if left <= 0 {
		return 0, false
	}
	if len(samples) > left {
		samples = samples[:left]
	}
	n, ok := t.src.Stream(samples)
	for i := range samples[:n] {
		g := t.level(t.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		t.pos++
	}
	if n == 0 && !ok {
		return 0, false
	}
	return n, true
}

func (t *tone) Err() error { return t.src.Err() }

// Package lfo provides low-frequency oscillators for slow modulation such as
// tremolo.
package lfo

import (
	"math/rand/v2"
)

type Shape int

const (
	Triangle Shape = iota
	Square
	Saw
	// Hold picks a new random level once per cycle.
	Hold
)

func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// LFO produces one modulation value per sample in [-depth, +depth].
type LFO struct {
	depth  float64
	rateHz float64
	shape  Shape
	phase  float64
	held   float64
	rng    *rand.Rand
}

// New returns an oscillator at rateHz. rng feeds the Hold shape; nil gets a
// randomly seeded one.
func New(rateHz, depth float64, shape Shape, rng *rand.Rand) *LFO {
	if shape < Triangle || shape > Hold {
		shape = Triangle
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LFO{depth: depth, rateHz: rateHz, shape: shape, rng: rng}
}

// Sample returns the value at the current phase, then advances one sample.
// It returns 0 when depth or rate is zero.
func (l *LFO) Sample(sampleRate float64) float64 {
	if !l.Active() || sampleRate <= 0 {
		return 0
	}
	var v float64
	switch l.shape {
	case Square:
		v = 1
		if l.phase >= 0.5 {
			v = -1
		}
	case Saw:
		v = 1 - 2*l.phase
	case Hold:
		v = l.held
	default:
		if l.phase < 0.5 {
			v = 4*l.phase - 1
		} else {
			v = 3 - 4*l.phase
		}
	}

	l.phase += l.rateHz / sampleRate
	if l.phase >= 1 {
		l.phase -= float64(int(l.phase))
		if l.shape == Hold {
			l.held = l.rng.Float64()*2 - 1
		}
	}
	return v * l.depth
}

func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset rewinds to phase 0.
func (l *LFO) Reset() {
	l.phase = 0
	l.held = 0
}

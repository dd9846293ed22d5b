// Package notefx draws a short-lived glyph for every played note. The glyph
// drifts along the melodic contour: up when the pitch rises, down when it
// falls, sideways when it repeats or rests.
package notefx

import (
	"image/color"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	startSize  = 30
	growth     = 0.5
	glyphDecay = 0.02
)

// Vec2 is a per-tick displacement.
type Vec2 struct {
	X, Y float64
}

// Glyph is one floating note label.
type Glyph struct {
	X, Y  float64
	Size  float64
	Life  float64
	Decay float64
	Dir   Vec2
	Token music.Token
	Color color.NRGBA
	Label string
}

// Visualizer owns the live glyphs and remembers the last pitched note so the
// next glyph can compare against it. It is not safe for concurrent use.
type Visualizer struct {
	rng    *rand.Rand
	glyphs []Glyph
	last   float64
}

func NewVisualizer(rng *rand.Rand) *Visualizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Visualizer{rng: rng}
}

// Direction picks the drift for a note at current Hz following a note at
// previous Hz. previous is 0 when no pitched note has played yet.
func Direction(current, previous float64, rng *rand.Rand) Vec2 {
	switch {
	case current <= 0:
		return Vec2{X: (rng.Float64() - 0.5) * 3}
	case previous <= 0:
		return Vec2{Y: -2}
	case current > previous:
		return Vec2{Y: -3}
	case current < previous:
		return Vec2{Y: 2}
	default:
		return Vec2{X: (rng.Float64() - 0.5) * 4}
	}
}

// Spawn adds a glyph for tok sounding at freq Hz.
func (v *Visualizer) Spawn(x, y float64, tok music.Token, freq float64) {
	v.glyphs = append(v.glyphs, Glyph{
		X:     x,
		Y:     y,
		Size:  startSize,
		Life:  1,
		Decay: glyphDecay,
		Dir:   Direction(freq, v.last, v.rng),
		Token: tok,
		Color: Color(tok),
		Label: Label(tok),
	})
	if freq > 0 {
		v.last = freq
	}
}

// LastFrequency returns the most recent nonzero pitch seen by Spawn.
func (v *Visualizer) LastFrequency() float64 { return v.last }

func (v *Visualizer) Update() {
	for i := range v.glyphs {
		g := &v.glyphs[i]
		g.X += g.Dir.X
		g.Y += g.Dir.Y
		g.Life -= g.Decay
		g.Size += growth
	}
	alive := v.glyphs[:0]
	for _, g := range v.glyphs {
		if g.Life > 0 {
			alive = append(alive, g)
		}
	}
	clear(v.glyphs[len(alive):])
	v.glyphs = alive
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func (v *Visualizer) Draw(s surface.Surface) {
	for _, g := range v.glyphs {
		s.FillCircle(g.X, g.Y, g.Size, surface.Fade(g.Color, g.Life))
		s.Text(g.Label, g.X, g.Y, surface.Fade(white, g.Life))
	}
}

func (v *Visualizer) Count() int { return len(v.glyphs) }

// Glyphs returns a copy of the live glyphs in spawn order.
func (v *Visualizer) Glyphs() []Glyph {
	return append([]Glyph(nil), v.glyphs...)
}

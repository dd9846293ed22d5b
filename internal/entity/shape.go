package entity

import (
	"image/color"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

// ShapeKind is the outline a Shape draws.
type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindSquare
	KindTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSquare:
		return "square"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

const (
	shapeGravity  = 0.3
	shapeBounce   = 0.7
	shapeFriction = 0.99
	shapeDecay    = 0.008
	shapeStroke   = 2
)

var shapeSize = Range{20, 50}

// softPalette is easy on the eyes against a near-black background.
var softPalette = []color.NRGBA{
	surface.ParseHex("#64ffda"),
	surface.ParseHex("#82b1ff"),
	surface.ParseHex("#b388ff"),
	surface.ParseHex("#ff8a65"),
	surface.ParseHex("#81c784"),
	surface.ParseHex("#ffb74d"),
}

// Shape is a bouncing circle, square or triangle under gravity.
type Shape struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Rotation float64
	Spin     float64
	Kind     ShapeKind
	Color    color.NRGBA

	bounds Bounds
	lifecycle
}

// NewShape spawns a shape at (x, y) with a mostly upward kick.
func NewShape(x, y float64, b Bounds, rng *rand.Rand) *Shape {
	return &Shape{
		X:         x,
		Y:         y,
		VX:        spread(rng, 7.5),
		VY:        spread(rng, 7.5) - 5,
		Size:      shapeSize.Random(rng),
		Spin:      spread(rng, 0.1),
		Kind:      ShapeKind(rng.IntN(3)),
		Color:     pick(rng, softPalette),
		bounds:    b,
		lifecycle: newLifecycle(shapeDecay),
	}
}

// newShapeParticle is the small fast debris AddShape scatters around the
// main shape.
func newShapeParticle(x, y float64, b Bounds, rng *rand.Rand) *Shape {
	s := NewShape(x, y, b, rng)
	s.Size = Range{5, 15}.Random(rng)
	s.VX = spread(rng, 10)
	s.VY = spread(rng, 10)
	s.decay = 0.02
	return s
}

func (s *Shape) Update() {
	s.VY += shapeGravity
	s.X += s.VX
	s.Y += s.VY
	s.Rotation += s.Spin

	half := s.Size / 2
	if s.X+half > s.bounds.W || s.X-half < 0 {
		s.VX *= -shapeBounce
		s.X = clampf(s.X, half, s.bounds.W-half)
	}
	if s.Y+half > s.bounds.H || s.Y-half < 0 {
		s.VY *= -shapeBounce
		s.Y = clampf(s.Y, half, s.bounds.H-half)
	}

	s.VX *= shapeFriction
	s.VY *= shapeFriction
	s.age()
}

func (s *Shape) Draw(dst surface.Surface) {
	if s.Dead() {
		return
	}
	c := surface.Fade(s.Color, s.life)
	switch s.Kind {
	case KindCircle:
		dst.FillCircle(s.X, s.Y, s.Size/2, c)
	case KindSquare:
		pts := surface.Square(s.X, s.Y, s.Size, s.Rotation)
		dst.FillPolygon(pts, c)
		dst.StrokePolygon(pts, shapeStroke, c)
	case KindTriangle:
		pts := surface.Triangle(s.X, s.Y, s.Size, s.Rotation)
		dst.FillPolygon(pts, c)
		dst.StrokePolygon(pts, shapeStroke, c)
	}
}

// clampf keeps v in [lo, hi]. When the box is wider than the canvas lo wins,
// matching max(lo, min(hi, v)).
func clampf(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

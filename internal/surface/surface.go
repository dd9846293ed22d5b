// Package surface defines the drawing primitives the simulation renders
// through. Backends live in subpackages: ebitensurf for the game window,
// ggsurf for offscreen images and termsurf for terminals.
package surface

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position in canvas pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Stop is one color stop of a radial gradient. Offset is in [0, 1] from the
// center outward.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface receives drawing calls for one frame. Colors are non-premultiplied
// and carry their own alpha; backends composite with source-over blending.
type Surface interface {
	Size() (w, h float64)
	FillCircle(x, y, r float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	StrokeRect(x, y, w, h, width float64, c color.NRGBA)
	// FillPolygon fills a closed outline. Outlines must be star-shaped about
	// their centroid (triangles, squares, stars).
	FillPolygon(pts []Point, c color.NRGBA)
	StrokePolygon(pts []Point, width float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillRadialCircle(x, y, r float64, stops []Stop)
	// Text draws s centered on (x, y).
	Text(s string, x, y float64, c color.NRGBA)
}

// ParseHex parses "#rrggbb". Invalid input yields opaque white.
func ParseHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Fade scales the alpha of c by a, clamped to [0, 1].
func Fade(c color.NRGBA, a float64) color.NRGBA {
	a = clamp01(a)
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}

// RGBA builds a color from 0-255 channels and a [0, 1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

// Scale multiplies every channel by factor, flooring and clamping to
// [0, 255]. Alpha is untouched.
func Scale(c color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: scaleChannel(c.R, factor),
		G: scaleChannel(c.G, factor),
		B: scaleChannel(c.B, factor),
		A: c.A,
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	f := math.Floor(float64(v) * factor)
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

// Lerp blends a toward b by t in linear RGB, interpolating alpha as well.
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

// GradientAt samples a stop list at offset t. Stops must be sorted by Offset.
func GradientAt(stops []Stop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			lo, hi := stops[i-1], stops[i]
			span := hi.Offset - lo.Offset
			if span <= 0 {
				return hi.Color
			}
			return Lerp(lo.Color, hi.Color, (t-lo.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

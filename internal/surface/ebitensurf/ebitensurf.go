// Package ebitensurf draws surface calls onto an ebiten image.
package ebitensurf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	defaultFontSize = 16
	ringSegments    = 48
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

var _ surface.Surface = (*Surface)(nil)

func init() {
	whiteImage.Fill(color.White)
}

// Surface wraps the frame's target image. Point it at a new image with
// SetTarget before each Draw.
type Surface struct {
	dst  *ebiten.Image
	face *text.GoTextFace

	verts []ebiten.Vertex
	inds  []uint16
}

// New loads the embedded Go font at size points.
func New(size float64) (*Surface, error) {
	if size <= 0 {
		size = defaultFontSize
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Surface{face: &text.GoTextFace{Source: src, Size: size}}, nil
}

func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

func (s *Surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.NRGBA) {
	vector.StrokeRect(s.dst, float32(x), float32(y), float32(w), float32(h), float32(width), c, true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if width <= 0 || c.A == 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// FillPolygon fans triangles out from the centroid.
func (s *Surface) FillPolygon(pts []surface.Point, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	center := surface.Centroid(pts)
	s.verts = append(s.verts[:0], vertex(center.X, center.Y, c))
	for _, p := range pts {
		s.verts = append(s.verts, vertex(p.X, p.Y, c))
	}
	s.inds = s.inds[:0]
	n := uint16(len(pts))
	for i := uint16(0); i < n; i++ {
		s.inds = append(s.inds, 0, 1+i, 1+(i+1)%n)
	}
	s.dst.DrawTriangles(s.verts, s.inds, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) StrokePolygon(pts []surface.Point, width float64, c color.NRGBA) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, width, c)
	}
}

// FillRadialCircle builds one ring of vertices per stop and lets the GPU
// interpolate color between rings.
func (s *Surface) FillRadialCircle(x, y, r float64, stops []surface.Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	if len(stops) == 1 {
		s.FillCircle(x, y, r, stops[0].Color)
		return
	}
	s.verts = s.verts[:0]
	for _, st := range stops {
		rr := r * st.Offset
		for k := 0; k < ringSegments; k++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(k) / ringSegments)
			s.verts = append(s.verts, vertex(x+cos*rr, y+sin*rr, st.Color))
		}
	}
	s.inds = s.inds[:0]
	for ring := 0; ring+1 < len(stops); ring++ {
		inner, outer := uint16(ring*ringSegments), uint16((ring+1)*ringSegments)
		for k := uint16(0); k < ringSegments; k++ {
			next := (k + 1) % ringSegments
			s.inds = append(s.inds,
				inner+k, outer+k, outer+next,
				inner+k, outer+next, inner+next,
			)
		}
	}
	s.dst.DrawTriangles(s.verts, s.inds, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *Surface) Text(str string, x, y float64, c color.NRGBA) {
	if str == "" || c.A == 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.dst, str, s.face, op)
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}

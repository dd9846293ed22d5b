// Package ggsurf renders surface calls into an in-memory image with gg.
// It backs offline frame rendering and needs no window or GPU.
package ggsurf

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const defaultFontSize = 16

type Surface struct {
	dc   *gg.Context
	face font.Face
}

var _ surface.Surface = (*Surface)(nil)

// New creates a w×h canvas with the embedded Go font at size points.
func New(w, h int, size float64) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", w, h)
	}
	if size <= 0 {
		size = defaultFontSize
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size})
	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)
	return &Surface{dc: dc, face: face}, nil
}

// Snapshot copies the canvas into a new Surface. Drawing on the copy leaves
// s untouched, so overlays can go on a snapshot while s keeps its trails.
func (s *Surface) Snapshot() *Surface {
	dc := gg.NewContextForImage(s.dc.Image())
	dc.SetFontFace(s.face)
	return &Surface{dc: dc, face: s.face}
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

// Clear paints the whole canvas opaque c.
func (s *Surface) Clear(c color.NRGBA) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *Surface) Image() image.Image { return s.dc.Image() }

func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	if r <= 0 {
		return
	}
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.NRGBA) {
	s.dc.DrawRectangle(x, y, w, h)
	s.stroke(width, c)
}

func (s *Surface) FillPolygon(pts []surface.Point, c color.NRGBA) {
	if !s.path(pts) {
		return
	}
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) StrokePolygon(pts []surface.Point, width float64, c color.NRGBA) {
	if !s.path(pts) {
		return
	}
	s.stroke(width, c)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if width <= 0 {
		return
	}
	s.dc.DrawLine(x0, y0, x1, y1)
	s.stroke(width, c)
}

func (s *Surface) FillRadialCircle(x, y, r float64, stops []surface.Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	g := gg.NewRadialGradient(x, y, 0, x, y, r)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	s.dc.DrawCircle(x, y, r)
	s.dc.SetFillStyle(g)
	s.dc.Fill()
}

func (s *Surface) Text(str string, x, y float64, c color.NRGBA) {
	if str == "" {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(str, x, y, 0.5, 0.5)
}

func (s *Surface) path(pts []surface.Point) bool {
	if len(pts) < 2 {
		return false
	}
	s.dc.NewSubPath()
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	return true
}

func (s *Surface) stroke(width float64, c color.NRGBA) {
	s.dc.SetLineWidth(width)
	s.dc.SetColor(c)
	s.dc.Stroke()
}

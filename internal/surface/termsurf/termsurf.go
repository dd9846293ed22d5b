// Package termsurf rasterizes surface calls onto a grid of terminal cells.
// Each cell stands for a cellW×cellH block of canvas pixels and is filled
// when its center falls inside a shape. Background colors persist between
// frames so translucent clears leave trails; text is redrawn every frame.
// An overlay layer, also redrawn every frame, sits on top for the HUD.
package termsurf

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

// CellSetter is the part of tcell.Screen that Flush writes to.
type CellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type cell struct {
	bg    colorful.Color
	fg    colorful.Color
	glyph rune
	// wide marks the right half of a double-width glyph.
	wide bool
	// stamp dedupes cells within one stroke so overlapping samples do not
	// blend twice.
	stamp uint32
}

type Surface struct {
	cols, rows   int
	cellW, cellH float64
	cells        []cell
	top          []cell
	used         []bool
	onTop        bool
	stamp        uint32
}

var _ surface.Surface = (*Surface)(nil)

// New creates a cols×rows grid. Typical terminal cells are about twice as
// tall as wide, so 8×16 keeps circles round.
func New(cols, rows int, cellW, cellH float64) *Surface {
	s := &Surface{cellW: cellW, cellH: cellH}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid, clearing it to black.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
	s.top = make([]cell, s.cols*s.rows)
	s.used = make([]bool, s.cols*s.rows)
}

func (s *Surface) Grid() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// CellAt maps a canvas point to its cell.
func (s *Surface) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// Point maps a cell to the canvas point at its center.
func (s *Surface) Point(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// BeginFrame drops last frame's text and overlay.
func (s *Surface) BeginFrame() {
	for i := range s.cells {
		s.cells[i].glyph = 0
		s.cells[i].wide = false
	}
	clear(s.used)
}

// Overlay returns a Surface that draws on the overlay layer. Overlay cells
// start from the trail layer's colors and hide its text.
func (s *Surface) Overlay() surface.Surface { return overlay{s} }

// Background returns the visible background color of a cell.
func (s *Surface) Background(col, row int) color.NRGBA {
	c := s.visible(col, row)
	if c == nil {
		return color.NRGBA{}
	}
	r, g, b := c.bg.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Glyph returns the visible rune of a cell this frame, or 0.
func (s *Surface) Glyph(col, row int) rune {
	if c := s.visible(col, row); c != nil {
		return c.glyph
	}
	return 0
}

func (s *Surface) index(col, row int) int {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return -1
	}
	return row*s.cols + col
}

func (s *Surface) visible(col, row int) *cell {
	i := s.index(col, row)
	switch {
	case i < 0:
		return nil
	case s.used[i]:
		return &s.top[i]
	default:
		return &s.cells[i]
	}
}

// at returns the cell on the layer being drawn.
func (s *Surface) at(col, row int) *cell {
	i := s.index(col, row)
	if i < 0 {
		return nil
	}
	if !s.onTop {
		return &s.cells[i]
	}
	if !s.used[i] {
		s.top[i] = s.cells[i]
		s.used[i] = true
	}
	return &s.top[i]
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (s *Surface) blend(col, row int, c color.NRGBA) {
	if cl := s.at(col, row); cl != nil && c.A > 0 {
		cl.bg = cl.bg.BlendRgb(toColorful(c), float64(c.A)/255)
		if s.onTop {
			cl.glyph, cl.wide = 0, false
		}
	}
}

// fill blends c into every cell whose center passes inside, or into the
// cell holding (cx, cy) when the shape is smaller than one cell.
func (s *Surface) fill(minX, minY, maxX, maxY, cx, cy float64, inside func(x, y float64) bool, c func(x, y float64) color.NRGBA) {
	c0, r0 := s.CellAt(minX, minY)
	c1, r1 := s.CellAt(maxX, maxY)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, s.cols-1), min(r1, s.rows-1)
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := s.Point(col, row)
			if inside(x, y) {
				s.blend(col, row, c(x, y))
				hit = true
			}
		}
	}
	if !hit {
		col, row := s.CellAt(cx, cy)
		s.blend(col, row, c(cx, cy))
	}
}

func solid(c color.NRGBA) func(x, y float64) color.NRGBA {
	return func(float64, float64) color.NRGBA { return c }
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	if r <= 0 {
		return
	}
	s.fill(x-r, y-r, x+r, y+r, x, y, func(px, py float64) bool {
		return math.Hypot(px-x, py-y) <= r
	}, solid(c))
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.fill(x, y, x+w, y+h, x+w/2, y+h/2, func(px, py float64) bool {
		return px >= x && px <= x+w && py >= y && py <= y+h
	}, solid(c))
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.NRGBA) {
	s.strokePath([]surface.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, true, c)
}

func (s *Surface) FillPolygon(pts []surface.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minX, minY, maxX, maxY := bounds(pts)
	center := surface.Centroid(pts)
	s.fill(minX, minY, maxX, maxY, center.X, center.Y, func(px, py float64) bool {
		return contains(pts, px, py)
	}, solid(c))
}

func (s *Surface) StrokePolygon(pts []surface.Point, width float64, c color.NRGBA) {
	s.strokePath(pts, true, c)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if width <= 0 {
		return
	}
	s.strokePath([]surface.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, false, c)
}

// strokePath walks each segment in half-cell steps, blending each touched
// cell once.
func (s *Surface) strokePath(pts []surface.Point, closed bool, c color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	s.stamp++
	step := math.Min(s.cellW, s.cellH) / 2
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		steps := max(int(math.Hypot(b.X-a.X, b.Y-a.Y)/step), 1)
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			col, row := s.CellAt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
			if cl := s.at(col, row); cl != nil && cl.stamp != s.stamp {
				cl.stamp = s.stamp
				s.blend(col, row, c)
			}
		}
	}
}

func (s *Surface) FillRadialCircle(x, y, r float64, stops []surface.Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	s.fill(x-r, y-r, x+r, y+r, x, y, func(px, py float64) bool {
		return math.Hypot(px-x, py-y) <= r
	}, func(px, py float64) color.NRGBA {
		return surface.GradientAt(stops, math.Hypot(px-x, py-y)/r)
	})
}

// Text writes s centered on the cell holding (x, y). The glyph takes the
// foreground color blended over the cell background by c's alpha.
func (s *Surface) Text(str string, x, y float64, c color.NRGBA) {
	if str == "" || c.A == 0 {
		return
	}
	col, row := s.CellAt(x, y)
	col -= runewidth.StringWidth(str) / 2
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cl := s.at(col, row); cl != nil {
			cl.glyph = r
			cl.wide = false
			cl.fg = cl.bg.BlendRgb(toColorful(c), float64(c.A)/255)
			if w == 2 {
				if next := s.at(col+1, row); next != nil {
					next.glyph = 0
					next.wide = true
				}
			}
		}
		col += w
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Flush copies the grid to dst. It does not call Show.
func (s *Surface) Flush(dst CellSetter) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := s.visible(col, row)
			if cl.wide {
				continue
			}
			style := tcell.StyleDefault.Background(tcellColor(cl.bg))
			ch := ' '
			if cl.glyph != 0 {
				ch = cl.glyph
				style = style.Foreground(tcellColor(cl.fg))
			}
			dst.SetContent(col, row, ch, nil, style)
		}
	}
}

func bounds(pts []surface.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// contains is the even-odd rule.
func contains(pts []surface.Point, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

type overlay struct {
	s *Surface
}

func (o overlay) draw(fn func(s *Surface)) {
	o.s.onTop = true
	fn(o.s)
	o.s.onTop = false
}

func (o overlay) Size() (float64, float64) { return o.s.Size() }

func (o overlay) FillCircle(x, y, r float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.FillCircle(x, y, r, c) })
}

func (o overlay) FillRect(x, y, w, h float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.FillRect(x, y, w, h, c) })
}

func (o overlay) StrokeRect(x, y, w, h, width float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.StrokeRect(x, y, w, h, width, c) })
}

func (o overlay) FillPolygon(pts []surface.Point, c color.NRGBA) {
	o.draw(func(s *Surface) { s.FillPolygon(pts, c) })
}

func (o overlay) StrokePolygon(pts []surface.Point, width float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.StrokePolygon(pts, width, c) })
}

func (o overlay) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.StrokeLine(x0, y0, x1, y1, width, c) })
}

func (o overlay) FillRadialCircle(x, y, r float64, stops []surface.Stop) {
	o.draw(func(s *Surface) { s.FillRadialCircle(x, y, r, stops) })
}

func (o overlay) Text(str string, x, y float64, c color.NRGBA) {
	o.draw(func(s *Surface) { s.Text(str, x, y, c) })
}

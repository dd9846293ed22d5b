package surface

import "image/color"

// OpKind names a recorded drawing call.
type OpKind int

const (
	OpFillCircle OpKind = iota + 1
	OpFillRect
	OpStrokeRect
	OpFillPolygon
	OpStrokePolygon
	OpStrokeLine
	OpFillRadialCircle
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillCircle:
		return "fill-circle"
	case OpFillRect:
		return "fill-rect"
	case OpStrokeRect:
		return "stroke-rect"
	case OpFillPolygon:
		return "fill-polygon"
	case OpStrokePolygon:
		return "stroke-polygon"
	case OpStrokeLine:
		return "stroke-line"
	case OpFillRadialCircle:
		return "fill-radial-circle"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded call. Unused fields are zero.
type Op struct {
	Kind   OpKind
	X, Y   float64
	X1, Y1 float64
	W, H   float64
	R      float64
	Width  float64
	Color  color.NRGBA
	Points []Point
	Stops  []Stop
	Text   string
}

// Recorder is a Surface that keeps every call in order. It backs tests and
// headless runs.
type Recorder struct {
	W, H float64
	Ops  []Op
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Width: width, Color: c})
}

func (r *Recorder) FillPolygon(pts []Point, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPolygon, Points: append([]Point(nil), pts...), Color: c})
}

func (r *Recorder) StrokePolygon(pts []Point, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePolygon, Points: append([]Point(nil), pts...), Width: width, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) FillRadialCircle(x, y, rad float64, stops []Stop) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRadialCircle, X: x, Y: y, R: rad, Stops: append([]Stop(nil), stops...)})
}

func (r *Recorder) Text(s string, x, y float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}

package surface

import (
	"image/color"
	"math"
	"testing"
)

func TestParseHexRoundTrip(t *testing.T) {
	c := ParseHex("#ff6b6b")
	if c != (color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}) {
		t.Fatalf("ParseHex = %+v", c)
	}
	if got := Hex(c); got != "#ff6b6b" {
		t.Fatalf("Hex = %q, want #ff6b6b", got)
	}
	if bad := ParseHex("nope"); bad != (color.NRGBA{255, 255, 255, 255}) {
		t.Fatalf("invalid hex should give white, got %+v", bad)
	}
}

func TestScaleFloorsAndClamps(t *testing.T) {
	c := color.NRGBA{R: 200, G: 101, B: 3, A: 128}
	dark := Scale(c, 0.7)
	if dark.R != 140 || dark.G != 70 || dark.B != 2 {
		t.Fatalf("Scale(0.7) = %+v", dark)
	}
	bright := Scale(c, 1.3)
	if bright.R != 255 || bright.G != 131 || bright.B != 3 {
		t.Fatalf("Scale(1.3) = %+v", bright)
	}
	if bright.A != 128 {
		t.Fatalf("alpha changed: %d", bright.A)
	}
}

func TestFadeClamps(t *testing.T) {
	c := color.NRGBA{A: 200}
	if got := Fade(c, 0.5).A; got != 100 {
		t.Errorf("Fade(0.5).A = %d, want 100", got)
	}
	if got := Fade(c, -1).A; got != 0 {
		t.Errorf("Fade(-1).A = %d, want 0", got)
	}
	if got := Fade(c, 3).A; got != 200 {
		t.Errorf("Fade(3).A = %d, want 200", got)
	}
}

func TestGradientAtEndpoints(t *testing.T) {
	stops := []Stop{
		{0, RGBA(255, 255, 200, 0.8)},
		{0.5, RGBA(255, 200, 100, 0.4)},
		{1, RGBA(255, 100, 50, 0)},
	}
	if got := GradientAt(stops, 0); got != stops[0].Color {
		t.Errorf("t=0 got %+v", got)
	}
	if got := GradientAt(stops, 1); got != stops[2].Color {
		t.Errorf("t=1 got %+v", got)
	}
	mid := GradientAt(stops, 0.25)
	if mid.A >= stops[0].Color.A || mid.A <= stops[1].Color.A {
		t.Errorf("t=0.25 alpha %d not between stops", mid.A)
	}
}

func TestStarAlternatesRadii(t *testing.T) {
	pts := Star(0, 0, 5, 10, 4, 0)
	if len(pts) != 10 {
		t.Fatalf("len = %d, want 10", len(pts))
	}
	for i, p := range pts {
		want := 10.0
		if i%2 == 1 {
			want = 4
		}
		if d := math.Hypot(p.X, p.Y); math.Abs(d-want) > 1e-9 {
			t.Fatalf("point %d radius %f, want %f", i, d, want)
		}
	}
	if pts[0].Y >= 0 {
		t.Fatalf("first point should face up, got %+v", pts[0])
	}
}

func TestSquareRotationKeepsCentroid(t *testing.T) {
	pts := Square(5, 7, 10, 0.7)
	c := Centroid(pts)
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-7) > 1e-9 {
		t.Fatalf("centroid = %+v", c)
	}
}

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(100, 50)
	r.FillCircle(1, 2, 3, color.NRGBA{})
	r.FillCircle(1, 2, 3, color.NRGBA{})
	r.Text("Do", 0, 0, color.NRGBA{})
	if r.Count(OpFillCircle) != 2 || r.Count(OpText) != 1 {
		t.Fatalf("counts wrong: %+v", r.Ops)
	}
	r.Reset()
	if len(r.Ops) != 0 {
		t.Fatalf("reset left %d ops", len(r.Ops))
	}
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Fatalf("size = %v,%v", w, h)
	}
}

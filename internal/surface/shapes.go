package surface

import "math"

// Rotated returns pts rotated by angle radians about (cx, cy).
func Rotated(pts []Point, cx, cy, angle float64) []Point {
	sin, cos := math.Sincos(angle)
	out := make([]Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-cx, p.Y-cy
		out[i] = Point{X: cx + dx*cos - dy*sin, Y: cy + dx*sin + dy*cos}
	}
	return out
}

// Square returns the corners of an axis-aligned square of side size
// centered on (cx, cy), rotated by angle.
func Square(cx, cy, size, angle float64) []Point {
	h := size / 2
	return Rotated([]Point{
		{cx - h, cy - h},
		{cx + h, cy - h},
		{cx + h, cy + h},
		{cx - h, cy + h},
	}, cx, cy, angle)
}

// Triangle returns an isosceles triangle with apex up, fitting a size box
// centered on (cx, cy), rotated by angle.
func Triangle(cx, cy, size, angle float64) []Point {
	h := size / 2
	return Rotated([]Point{
		{cx, cy - h},
		{cx - h, cy + h},
		{cx + h, cy + h},
	}, cx, cy, angle)
}

// Star returns the outline of a star with the given number of points,
// alternating between the outer and inner radius. The first point faces up
// before rotation.
func Star(cx, cy float64, points int, outer, inner, angle float64) []Point {
	if points < 2 {
		points = 2
	}
	out := make([]Point, 0, points*2)
	step := math.Pi / float64(points)
	a := angle - math.Pi/2
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		out = append(out, Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r})
		a += step
	}
	return out
}

// Centroid returns the vertex average of pts.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

package entity

import (
	"math"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	// TrailCapacity is the number of head positions a Comet remembers.
	TrailCapacity = 25
	cometRebound  = 0.8
	cometDecay    = 0.006
)

var (
	cometSpeed = Range{8, 20}
	cometSize  = Range{8, 20}
	cometColor = surface.ParseHex("#82b1ff")
)

// Comet flies in a straight line, rebounding off the edges, dragging a
// fading trail of its last positions.
type Comet struct {
	X, Y   float64
	VX, VY float64
	Size   float64

	bounds Bounds
	// trail is a ring buffer; start is the oldest point once full.
	trail [TrailCapacity]surface.Point
	start int
	n     int
	lifecycle
}

func NewComet(x, y float64, b Bounds, rng *rand.Rand) *Comet {
	vx, vy := polar(rng.Float64()*2*math.Pi, cometSpeed.Random(rng))
	return &Comet{
		X:         x,
		Y:         y,
		VX:        vx,
		VY:        vy,
		Size:      cometSize.Random(rng),
		bounds:    b,
		lifecycle: newLifecycle(cometDecay),
	}
}

func (c *Comet) Update() {
	c.X += c.VX
	c.Y += c.VY
	c.push(surface.Point{X: c.X, Y: c.Y})

	if c.X < 0 || c.X > c.bounds.W {
		c.VX *= -cometRebound
	}
	if c.Y < 0 || c.Y > c.bounds.H {
		c.VY *= -cometRebound
	}
	c.age()
}

func (c *Comet) push(p surface.Point) {
	if c.n < TrailCapacity {
		c.trail[(c.start+c.n)%TrailCapacity] = p
		c.n++
		return
	}
	c.trail[c.start] = p
	c.start = (c.start + 1) % TrailCapacity
}

// Trail returns the remembered positions, oldest first.
func (c *Comet) Trail() []surface.Point {
	out := make([]surface.Point, c.n)
	for i := range out {
		out[i] = c.at(i)
	}
	return out
}

func (c *Comet) at(i int) surface.Point {
	return c.trail[(c.start+i)%TrailCapacity]
}

// TrailOpacity is the opacity of trail point i, proportional to recency.
func (c *Comet) TrailOpacity(i int) float64 {
	if c.n == 0 {
		return 0
	}
	return float64(i) / float64(c.n)
}

func (c *Comet) Draw(dst surface.Surface) {
	if c.Dead() {
		return
	}
	for i := 1; i < c.n; i++ {
		prev, cur := c.at(i-1), c.at(i)
		width := float64(i) / float64(c.n) * c.Size
		dst.StrokeLine(prev.X, prev.Y, cur.X, cur.Y, width,
			surface.Fade(cometColor, c.TrailOpacity(i)*c.life))
	}
	dst.FillCircle(c.X, c.Y, c.Size, surface.Fade(cometColor, c.life))
}

package entity

import (
	"math"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	supernovaParticles = 20
	supernovaExpand    = 8
	supernovaDamping   = 0.98
	supernovaDecay     = 0.012
)

var (
	supernovaCap   = Range{150, 250}
	supernovaSpeed = Range{5, 15}
	supernovaSize  = Range{3, 11}
	supernovaFade  = Range{0.015, 0.025}

	supernovaSpark = surface.ParseHex("#ffaa00")
	supernovaCore  = []surface.Stop{
		{Offset: 0, Color: surface.RGBA(255, 255, 200, 0.8)},
		{Offset: 0.5, Color: surface.RGBA(255, 200, 100, 0.4)},
		{Offset: 1, Color: surface.RGBA(255, 100, 50, 0)},
	}
)

// Supernova is an expanding glowing core that throws a ring of sparks.
type Supernova struct {
	X, Y    float64
	Radius  float64
	MaxSize float64

	sparks []particle
	lifecycle
}

func NewSupernova(x, y float64, _ Bounds, rng *rand.Rand) *Supernova {
	n := &Supernova{
		X:         x,
		Y:         y,
		MaxSize:   supernovaCap.Random(rng),
		sparks:    make([]particle, 0, supernovaParticles),
		lifecycle: newLifecycle(supernovaDecay),
	}
	step := 2 * math.Pi / supernovaParticles
	for i := 0; i < supernovaParticles; i++ {
		vx, vy := polar(step*float64(i), supernovaSpeed.Random(rng))
		n.sparks = append(n.sparks, particle{
			x: x, y: y, vx: vx, vy: vy,
			size:      supernovaSize.Random(rng),
			lifecycle: newLifecycle(supernovaFade.Random(rng)),
		})
	}
	return n
}

func (n *Supernova) Update() {
	if n.Radius < n.MaxSize {
		n.Radius = math.Min(n.Radius+supernovaExpand, n.MaxSize)
	}
	for i := range n.sparks {
		p := &n.sparks[i]
		p.x += p.vx
		p.y += p.vy
		p.vx *= supernovaDamping
		p.vy *= supernovaDamping
		p.age()
	}
	n.sparks = pruneParticles(n.sparks)
	n.age()
}

// Particles reports the live spark count.
func (n *Supernova) Particles() int { return len(n.sparks) }

func (n *Supernova) Draw(dst surface.Surface) {
	if n.Dead() {
		return
	}
	if n.Radius > 0 {
		stops := make([]surface.Stop, len(supernovaCore))
		for i, s := range supernovaCore {
			stops[i] = surface.Stop{Offset: s.Offset, Color: surface.Fade(s.Color, n.life)}
		}
		dst.FillRadialCircle(n.X, n.Y, n.Radius, stops)
	}
	for _, p := range n.sparks {
		dst.FillCircle(p.x, p.y, p.size, surface.Fade(supernovaSpark, p.life*n.life))
	}
}

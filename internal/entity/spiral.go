package entity

import (
	"math"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	spiralArms       = 3
	spiralSpin       = 0.1
	spiralStart      = 20
	spiralMaxRadius  = 120
	spiralExpand     = 2
	spiralEmitChance = 0.3
	spiralTwist      = 0.05
	spiralOrbit      = 0.02
	spiralDotDecay   = 0.02
	spiralDecay      = 0.008
)

var (
	spiralDotSize = Range{2, 8}
	spiralColor   = surface.ParseHex("#b388ff")
)

type orbiter struct {
	distance float64
	angle    float64
	size     float64
	lifecycle
}

type arm struct {
	angle float64
	dots  []orbiter
}

// Spiral is a rotating three-armed nebula that sheds orbiting dots.
type Spiral struct {
	X, Y     float64
	Rotation float64
	Radius   float64

	rng  *rand.Rand
	arms [spiralArms]arm
	lifecycle
}

func NewSpiral(x, y float64, _ Bounds, rng *rand.Rand) *Spiral {
	s := &Spiral{
		X:         x,
		Y:         y,
		Radius:    spiralStart,
		rng:       rng,
		lifecycle: newLifecycle(spiralDecay),
	}
	for i := range s.arms {
		s.arms[i].angle = 2 * math.Pi / spiralArms * float64(i)
	}
	return s
}

func (s *Spiral) Update() {
	s.Rotation += spiralSpin
	if s.Radius < spiralMaxRadius {
		s.Radius = math.Min(s.Radius+spiralExpand, spiralMaxRadius)
	}
	for i := range s.arms {
		a := &s.arms[i]
		if s.rng.Float64() < spiralEmitChance {
			d := s.rng.Float64() * s.Radius
			a.dots = append(a.dots, orbiter{
				distance:  d,
				angle:     a.angle + s.Rotation + d*spiralTwist,
				size:      spiralDotSize.Random(s.rng),
				lifecycle: newLifecycle(spiralDotDecay),
			})
		}
		alive := a.dots[:0]
		for _, o := range a.dots {
			o.angle += spiralOrbit
			o.age()
			if !o.Dead() {
				alive = append(alive, o)
			}
		}
		clear(a.dots[len(alive):])
		a.dots = alive
	}
	s.age()
}

// Particles reports the live dot count across all arms.
func (s *Spiral) Particles() int {
	n := 0
	for _, a := range s.arms {
		n += len(a.dots)
	}
	return n
}

func (s *Spiral) Draw(dst surface.Surface) {
	if s.Dead() {
		return
	}
	for _, a := range s.arms {
		for _, o := range a.dots {
			sin, cos := math.Sincos(o.angle)
			dst.FillCircle(s.X+cos*o.distance, s.Y+sin*o.distance, o.size,
				surface.Fade(spiralColor, o.life*s.life))
		}
	}
}

package entity

import (
	"image/color"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	explosionDamping = 0.95
	explosionGravity = 0.2
	explosionDecay   = 0.015
	explosionPulse   = 0.25
	// starChance is rolled again on every Draw, so a particle flickers
	// between star and circle from frame to frame.
	starChance = 0.3
	starPoints = 5
	starInner  = 0.5
)

var (
	explosionSpeed = Range{3, 18}
	explosionSize  = Range{3, 11}
	explosionFade  = Range{0.02, 0.04}
	pulseRate      = Range{0.1, 0.3}
	spinRate       = Range{-0.2, 0.2}
)

// Palettes are the named color sets an Explosion picks from at spawn.
var Palettes = map[string][]color.NRGBA{
	"candy": {
		surface.ParseHex("#ff6b6b"),
		surface.ParseHex("#ff9ff3"),
		surface.ParseHex("#feca57"),
		surface.ParseHex("#f368e0"),
	},
	"ocean": {
		surface.ParseHex("#4ecdc4"),
		surface.ParseHex("#45b7d1"),
		surface.ParseHex("#54a0ff"),
		surface.ParseHex("#82ccdd"),
	},
	"sunset": {
		surface.ParseHex("#ff9f43"),
		surface.ParseHex("#ee5253"),
		surface.ParseHex("#feca57"),
		surface.ParseHex("#ff6b81"),
	},
	"forest": {
		surface.ParseHex("#96ceb4"),
		surface.ParseHex("#1dd1a1"),
		surface.ParseHex("#10ac84"),
		surface.ParseHex("#a8e6cf"),
	},
}

// paletteNames is Palettes' keys in a fixed order so seeded runs repeat.
var paletteNames = func() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

type shard struct {
	particle
	color    color.NRGBA
	phase    float64
	rate     float64
	rotation float64
	spin     float64
}

// Explosion bursts into pulsing, spinning shards that fall under gravity.
type Explosion struct {
	X, Y    float64
	Palette string

	// look re-rolls stars on every draw. It is split off the spawn source so
	// drawing never shifts the simulation.
	look   *rand.Rand
	shards []shard
	lifecycle
}

func NewExplosion(x, y float64, _ Bounds, rng *rand.Rand) *Explosion {
	name := pick(rng, paletteNames)
	colors := Palettes[name]
	count := int(15 + rng.Float64()*20)
	e := &Explosion{
		X:         x,
		Y:         y,
		Palette:   name,
		look:      rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())),
		shards:    make([]shard, 0, count),
		lifecycle: newLifecycle(explosionDecay),
	}
	for i := 0; i < count; i++ {
		vx, vy := polar(rng.Float64()*2*math.Pi, explosionSpeed.Random(rng))
		e.shards = append(e.shards, shard{
			particle: particle{
				x: x, y: y, vx: vx, vy: vy,
				size:      explosionSize.Random(rng),
				lifecycle: newLifecycle(explosionFade.Random(rng)),
			},
			color: pick(rng, colors),
			phase: rng.Float64() * 2 * math.Pi,
			rate:  pulseRate.Random(rng),
			spin:  spinRate.Random(rng),
		})
	}
	return e
}

func (e *Explosion) Update() {
	alive := e.shards[:0]
	for _, s := range e.shards {
		s.x += s.vx
		s.y += s.vy
		s.vx *= explosionDamping
		s.vy *= explosionDamping
		s.vy += explosionGravity
		s.phase += s.rate
		s.rotation += s.spin
		s.age()
		if !s.Dead() {
			alive = append(alive, s)
		}
	}
	clear(e.shards[len(alive):])
	e.shards = alive
	e.age()
}

// Dead is true once the explosion fades or runs out of shards.
func (e *Explosion) Dead() bool {
	return e.life <= 0 || len(e.shards) == 0
}

// Particles reports the live shard count.
func (e *Explosion) Particles() int { return len(e.shards) }

// Colors returns the color of every live shard.
func (e *Explosion) Colors() []color.NRGBA {
	out := make([]color.NRGBA, len(e.shards))
	for i, s := range e.shards {
		out[i] = s.color
	}
	return out
}

func (e *Explosion) Draw(dst surface.Surface) {
	if e.Dead() {
		return
	}
	for _, s := range e.shards {
		size := s.size * (1 + explosionPulse*math.Sin(s.phase))
		c := surface.Fade(s.color, s.life*e.life)
		if e.look.Float64() < starChance {
			dst.FillPolygon(surface.Star(s.x, s.y, starPoints, size, size*starInner, s.rotation), c)
			continue
		}
		dst.FillCircle(s.x, s.y, size, c)
	}
}

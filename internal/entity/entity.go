// Package entity holds the particle engine: a handful of visual effect
// variants sharing one lifecycle, and the Manager that ticks, draws and
// purges them in insertion order.
//
// Every entity starts with life 1 and loses a fixed decay per Update. Once
// life reaches zero it is dead for good and the Manager drops it in the same
// Update pass.
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

// Entity is one simulated visual object. Update advances it by one tick,
// Draw only reads state.
type Entity interface {
	Update()
	Draw(s surface.Surface)
	Dead() bool
	Life() float64
}

// Bounds is the canvas size an entity bounces inside.
type Bounds struct {
	W, H float64
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max).
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// spread returns a value in (-half, half).
func spread(rng *rand.Rand, half float64) float64 {
	return (rng.Float64() - 0.5) * 2 * half
}

// pick returns a uniformly chosen element of items.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// polar splits a speed along angle.
func polar(angle, speed float64) (vx, vy float64) {
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// lifecycle is the life/decay pair every variant embeds.
type lifecycle struct {
	life  float64
	decay float64
}

func newLifecycle(decay float64) lifecycle {
	return lifecycle{life: 1, decay: decay}
}

func (l *lifecycle) age()          { l.life -= l.decay }
func (l *lifecycle) Life() float64 { return l.life }
func (l *lifecycle) Dead() bool    { return l.life <= 0 }

// particle is the sub-particle shared by Supernova and Explosion.
type particle struct {
	x, y   float64
	vx, vy float64
	size   float64
	lifecycle
}

// pruneParticles drops dead particles in place, keeping order.
func pruneParticles(ps []particle) []particle {
	alive := ps[:0]
	for _, p := range ps {
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	clear(ps[len(alive):])
	return alive
}

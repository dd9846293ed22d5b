package entity

import (
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

// Manager owns the live entities. Later entities draw on top. It is not safe
// for concurrent use.
type Manager struct {
	bounds   Bounds
	rng      *rand.Rand
	entities []Entity
}

// NewManager returns an empty manager. A nil rng gets a randomly seeded one.
func NewManager(b Bounds, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Manager{bounds: b, rng: rng}
}

// Resize changes the bounds handed to entities spawned from now on.
func (m *Manager) Resize(b Bounds) { m.bounds = b }

func (m *Manager) Bounds() Bounds { return m.bounds }

// Add appends an entity built by the caller.
func (m *Manager) Add(e Entity) {
	m.entities = append(m.entities, e)
}

// AddShape spawns a main shape plus three small debris shapes.
func (m *Manager) AddShape(x, y float64) {
	m.Add(NewShape(x, y, m.bounds, m.rng))
	for i := 0; i < 3; i++ {
		m.Add(newShapeParticle(x, y, m.bounds, m.rng))
	}
}

func (m *Manager) AddSupernova(x, y float64) { m.Add(NewSupernova(x, y, m.bounds, m.rng)) }
func (m *Manager) AddSpiral(x, y float64)    { m.Add(NewSpiral(x, y, m.bounds, m.rng)) }
func (m *Manager) AddComet(x, y float64)     { m.Add(NewComet(x, y, m.bounds, m.rng)) }
func (m *Manager) AddExplosion(x, y float64) { m.Add(NewExplosion(x, y, m.bounds, m.rng)) }

// Update ticks every entity once, then drops the dead ones keeping order.
func (m *Manager) Update() {
	for _, e := range m.entities {
		e.Update()
	}
	alive := m.entities[:0]
	for _, e := range m.entities {
		if !e.Dead() {
			alive = append(alive, e)
		}
	}
	clear(m.entities[len(alive):])
	m.entities = alive
}

func (m *Manager) Draw(s surface.Surface) {
	for _, e := range m.entities {
		e.Draw(s)
	}
}

func (m *Manager) Count() int { return len(m.entities) }

// Entities returns the live entities in draw order.
func (m *Manager) Entities() []Entity {
	return append([]Entity(nil), m.entities...)
}

// Clear drops every entity.
func (m *Manager) Clear() {
	clear(m.entities)
	m.entities = m.entities[:0]
}

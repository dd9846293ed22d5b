package entity

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/cbegin/tinytaps-go/internal/surface"
)

var canvas = Bounds{W: 800, H: 600}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

type spawner func(x, y float64, b Bounds, rng *rand.Rand) Entity

var variants = map[string]spawner{
	"shape":     func(x, y float64, b Bounds, r *rand.Rand) Entity { return NewShape(x, y, b, r) },
	"supernova": func(x, y float64, b Bounds, r *rand.Rand) Entity { return NewSupernova(x, y, b, r) },
	"spiral":    func(x, y float64, b Bounds, r *rand.Rand) Entity { return NewSpiral(x, y, b, r) },
	"comet":     func(x, y float64, b Bounds, r *rand.Rand) Entity { return NewComet(x, y, b, r) },
	"explosion": func(x, y float64, b Bounds, r *rand.Rand) Entity { return NewExplosion(x, y, b, r) },
}

func TestLifeDecreasesUntilPurged(t *testing.T) {
	for name, spawn := range variants {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(1); seed <= 20; seed++ {
				rng := seeded(seed)
				m := NewManager(canvas, rng)
				e := spawn(400, 300, canvas, rng)
				m.Add(e)
				prev := e.Life()
				if prev != 1 {
					t.Fatalf("initial life = %v, want 1", prev)
				}
				ticks := 0
				for m.Count() > 0 {
					m.Update()
					ticks++
					if e.Life() >= prev {
						t.Fatalf("tick %d: life %v did not drop below %v", ticks, e.Life(), prev)
					}
					prev = e.Life()
					if e.Dead() != (m.Count() == 0) {
						t.Fatalf("tick %d: dead=%v but count=%d", ticks, e.Dead(), m.Count())
					}
					if ticks > 200 {
						t.Fatalf("%s never died", name)
					}
				}
			}
		})
	}
}

func TestDeadEntitiesDrawNothing(t *testing.T) {
	for name, spawn := range variants {
		rng := seeded(7)
		e := spawn(400, 300, canvas, rng)
		for !e.Dead() {
			e.Update()
		}
		rec := surface.NewRecorder(canvas.W, canvas.H)
		e.Draw(rec)
		if len(rec.Ops) != 0 {
			t.Errorf("%s drew %d ops after death", name, len(rec.Ops))
		}
	}
}

func TestShapeStaysInsideBounds(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		s := NewShape(400, 300, canvas, seeded(seed))
		half := s.Size / 2
		for i := 0; i < 120; i++ {
			s.Update()
			if s.X < half || s.X > canvas.W-half || s.Y < half || s.Y > canvas.H-half {
				t.Fatalf("seed %d tick %d: shape at (%v,%v) outside bounds", seed, i, s.X, s.Y)
			}
		}
	}
}

func TestShapeSpawnRanges(t *testing.T) {
	rng := seeded(3)
	for i := 0; i < 500; i++ {
		s := NewShape(0, 0, canvas, rng)
		if s.Size < 20 || s.Size >= 50 {
			t.Fatalf("size = %v", s.Size)
		}
		if s.VX <= -7.5 || s.VX >= 7.5 || s.VY <= -12.5 || s.VY >= 2.5 {
			t.Fatalf("velocity = (%v,%v)", s.VX, s.VY)
		}
		if !slices.Contains(softPalette, s.Color) {
			t.Fatalf("color %v not in palette", s.Color)
		}
	}
}

func TestShapeDrawByKind(t *testing.T) {
	rec := surface.NewRecorder(canvas.W, canvas.H)
	for kind, want := range map[ShapeKind]surface.OpKind{
		KindCircle:   surface.OpFillCircle,
		KindSquare:   surface.OpFillPolygon,
		KindTriangle: surface.OpFillPolygon,
	} {
		rec.Reset()
		s := NewShape(100, 100, canvas, seeded(1))
		s.Kind = kind
		s.Draw(rec)
		if rec.Ops[0].Kind != want {
			t.Errorf("%s first op = %s, want %s", kind, rec.Ops[0].Kind, want)
		}
		if kind != KindCircle && rec.Count(surface.OpStrokePolygon) != 1 {
			t.Errorf("%s missing outline", kind)
		}
	}
}

func TestCometTrailIsBoundedFIFO(t *testing.T) {
	c := NewComet(400, 300, canvas, seeded(11))
	var heads []surface.Point
	for i := 0; i < 40; i++ {
		c.Update()
		heads = append(heads, surface.Point{X: c.X, Y: c.Y})
		if n := len(c.Trail()); n > TrailCapacity {
			t.Fatalf("trail length %d exceeds %d", n, TrailCapacity)
		}
	}
	trail := c.Trail()
	if len(trail) != TrailCapacity {
		t.Fatalf("trail length = %d, want %d", len(trail), TrailCapacity)
	}
	if !slices.Equal(trail, heads[len(heads)-TrailCapacity:]) {
		t.Fatal("trail is not the most recent positions in order")
	}
	if c.TrailOpacity(0) != 0 || c.TrailOpacity(TrailCapacity-1) <= c.TrailOpacity(1) {
		t.Fatal("trail opacity should rise with recency")
	}
}

func TestCometDrawSegments(t *testing.T) {
	c := NewComet(400, 300, canvas, seeded(5))
	for i := 0; i < 5; i++ {
		c.Update()
	}
	rec := surface.NewRecorder(canvas.W, canvas.H)
	c.Draw(rec)
	if got := rec.Count(surface.OpStrokeLine); got != 4 {
		t.Fatalf("segments = %d, want 4", got)
	}
	last := rec.Ops[len(rec.Ops)-1]
	if last.Kind != surface.OpFillCircle || last.X != c.X || last.Y != c.Y {
		t.Fatalf("head op = %+v", last)
	}
}

func TestSupernovaCoreAndSparks(t *testing.T) {
	n := NewSupernova(400, 300, canvas, seeded(2))
	if n.Particles() != 20 {
		t.Fatalf("sparks = %d, want 20", n.Particles())
	}
	if n.MaxSize < 150 || n.MaxSize >= 250 {
		t.Fatalf("max size = %v", n.MaxSize)
	}
	n.Update()
	if n.Radius != 8 {
		t.Fatalf("radius after one tick = %v, want 8", n.Radius)
	}
	for i := 0; i < 40; i++ {
		n.Update()
		if n.Radius > n.MaxSize {
			t.Fatalf("radius %v passed cap %v", n.Radius, n.MaxSize)
		}
	}
	if n.Radius != n.MaxSize {
		t.Fatalf("radius = %v, want cap %v", n.Radius, n.MaxSize)
	}
	rec := surface.NewRecorder(canvas.W, canvas.H)
	n.Draw(rec)
	if rec.Ops[0].Kind != surface.OpFillRadialCircle || len(rec.Ops[0].Stops) != 3 {
		t.Fatalf("first op = %+v, want radial core", rec.Ops[0])
	}
	if got := rec.Count(surface.OpFillCircle); got != n.Particles() {
		t.Fatalf("spark circles = %d, want %d", got, n.Particles())
	}
}

func TestSpiralGrowsAndEmits(t *testing.T) {
	s := NewSpiral(400, 300, canvas, seeded(9))
	for i := 0; i < 60; i++ {
		s.Update()
	}
	if s.Radius != 120 {
		t.Fatalf("radius = %v, want 120", s.Radius)
	}
	if math.Abs(s.Rotation-6) > 1e-9 {
		t.Fatalf("rotation = %v, want 6", s.Rotation)
	}
	if s.Particles() == 0 {
		t.Fatal("no dots emitted in 60 ticks")
	}
	// Each dot lives 50 ticks and each arm emits at most once per tick.
	if s.Particles() > 3*50 {
		t.Fatalf("dots = %d, want at most 150", s.Particles())
	}
	rec := surface.NewRecorder(canvas.W, canvas.H)
	s.Draw(rec)
	if got := rec.Count(surface.OpFillCircle); got != s.Particles() {
		t.Fatalf("drawn dots = %d, want %d", got, s.Particles())
	}
}

func TestExplosionPaletteAndCount(t *testing.T) {
	for seed := uint64(1); seed <= 100; seed++ {
		e := NewExplosion(400, 300, canvas, seeded(seed))
		if n := e.Particles(); n < 15 || n >= 35 {
			t.Fatalf("seed %d: %d shards, want 15..34", seed, n)
		}
		palette, ok := Palettes[e.Palette]
		if !ok {
			t.Fatalf("unknown palette %q", e.Palette)
		}
		for _, c := range e.Colors() {
			if !slices.Contains(palette, c) {
				t.Fatalf("seed %d: color %v not in %s", seed, c, e.Palette)
			}
		}
	}
}

func TestExplosionStarsAndCircles(t *testing.T) {
	e := NewExplosion(400, 300, canvas, seeded(4))
	rec := surface.NewRecorder(canvas.W, canvas.H)
	for i := 0; i < 20; i++ {
		e.Draw(rec)
	}
	stars, circles := rec.Count(surface.OpFillPolygon), rec.Count(surface.OpFillCircle)
	if stars+circles != 20*e.Particles() {
		t.Fatalf("ops = %d, want %d", stars+circles, 20*e.Particles())
	}
	frac := float64(stars) / float64(stars+circles)
	if frac < 0.15 || frac > 0.45 {
		t.Fatalf("star fraction = %.2f, want about 0.3", frac)
	}
	for _, op := range rec.Ops {
		if op.Kind == surface.OpFillPolygon && len(op.Points) != 10 {
			t.Fatalf("star has %d points, want 10", len(op.Points))
		}
	}
}

func TestExplosionDrawLeavesSpawnSourceAlone(t *testing.T) {
	drawn, quiet := seeded(12), seeded(12)
	e := NewExplosion(400, 300, canvas, drawn)
	NewExplosion(400, 300, canvas, quiet)
	rec := surface.NewRecorder(canvas.W, canvas.H)
	for i := 0; i < 10; i++ {
		e.Draw(rec)
	}
	if a, b := drawn.Uint64(), quiet.Uint64(); a != b {
		t.Fatalf("spawn source advanced by Draw: %d != %d", a, b)
	}
}

func TestExplosionDiesWithoutShards(t *testing.T) {
	e := NewExplosion(400, 300, canvas, seeded(8))
	ticks := 0
	for !e.Dead() {
		e.Update()
		ticks++
	}
	// Shards decay at least 0.02 per tick, the parent only 0.015.
	if ticks > 52 {
		t.Fatalf("explosion lasted %d ticks, shards should be gone by 50", ticks)
	}
	if e.Life() <= 0 {
		t.Fatalf("parent life %v ran out before the shards", e.Life())
	}
}

type fakeEntity struct {
	id int
	lifecycle
}

func (f *fakeEntity) Update() { f.age() }
func (f *fakeEntity) Draw(s surface.Surface) {
	s.Text(strconv.Itoa(f.id), 0, 0, softPalette[0])
}

func TestManagerKeepsOrder(t *testing.T) {
	m := NewManager(canvas, seeded(1))
	decays := []float64{0.1, 0.5, 0.1, 0.5, 0.1}
	for i, d := range decays {
		m.Add(&fakeEntity{id: i, lifecycle: newLifecycle(d)})
	}
	m.Update()
	m.Update()
	rec := surface.NewRecorder(canvas.W, canvas.H)
	m.Draw(rec)
	var got []string
	for _, op := range rec.Ops {
		got = append(got, op.Text)
	}
	if want := []string{"0", "2", "4"}; !slices.Equal(got, want) {
		t.Fatalf("draw order = %v, want %v", got, want)
	}
}

func TestAddShapeSpawnsDebris(t *testing.T) {
	m := NewManager(canvas, seeded(1))
	m.AddShape(400, 300)
	if m.Count() != 4 {
		t.Fatalf("count = %d, want 4", m.Count())
	}
	ents := m.Entities()
	lead := ents[0].(*Shape)
	if lead.Size < 20 {
		t.Fatalf("main size = %v", lead.Size)
	}
	for _, e := range ents[1:] {
		s := e.(*Shape)
		if s.Size < 5 || s.Size >= 15 || s.decay != 0.02 {
			t.Fatalf("debris = size %v decay %v", s.Size, s.decay)
		}
	}
}

func TestManagerResizeAffectsNewSpawns(t *testing.T) {
	m := NewManager(canvas, seeded(1))
	m.AddComet(10, 10)
	m.Resize(Bounds{W: 100, H: 100})
	m.AddComet(10, 10)
	ents := m.Entities()
	if ents[0].(*Comet).bounds != canvas {
		t.Fatal("live comet picked up new bounds")
	}
	if ents[1].(*Comet).bounds != (Bounds{W: 100, H: 100}) {
		t.Fatal("new comet did not get new bounds")
	}
}

func TestManagerCountStaysBounded(t *testing.T) {
	rng := seeded(42)
	m := NewManager(canvas, rng)
	peak := 0
	for i := 0; i < 1000; i++ {
		x, y := rng.Float64()*canvas.W, rng.Float64()*canvas.H
		m.AddShape(x, y)
		m.AddSupernova(x, y)
		m.AddSpiral(x, y)
		m.AddComet(x, y)
		m.AddExplosion(x, y)
		m.Update()
		peak = max(peak, m.Count())
	}
	// Nothing outlives 1/0.006 ticks.
	if peak > 8*170 {
		t.Fatalf("peak count = %d", peak)
	}
	for i := 0; i < 200; i++ {
		m.Update()
	}
	if m.Count() != 0 {
		t.Fatalf("count after drain = %d, want 0", m.Count())
	}
}

func BenchmarkManagerUpdate(b *testing.B) {
	rng := seeded(1)
	m := NewManager(canvas, rng)
	rec := surface.NewRecorder(canvas.W, canvas.H)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%4 == 0 {
			m.AddShape(400, 300)
			m.AddExplosion(400, 300)
		}
		m.Update()
		rec.Reset()
		m.Draw(rec)
	}
}

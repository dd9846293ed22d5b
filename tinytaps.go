// Package tinytaps is a tap toy for small children. Each tap plays the next
// note of a looping song, floats a note glyph along the melody's contour and
// sometimes sets off a particle effect.
package tinytaps

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/entity"
	"github.com/cbegin/tinytaps-go/internal/hud"
	tlog "github.com/cbegin/tinytaps-go/internal/log"
	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/notefx"
	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	// TickSeconds is the fixed step Update advances by.
	TickSeconds = 1.0 / 60
	statsEvery  = 60
	// keyArea is the share of the canvas height key presses land in.
	keyArea = 0.7
)

// trailColor is painted over the whole canvas every frame. Its low alpha
// leaves fading motion trails.
var trailColor = surface.RGBA(10, 10, 10, 0.03)

type Effect int

const (
	EffectNone Effect = iota
	EffectSupernova
	EffectSpiral
	EffectComet
	EffectExplosion
	EffectShape
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectSupernova:
		return "supernova"
	case EffectSpiral:
		return "spiral"
	case EffectComet:
		return "comet"
	case EffectExplosion:
		return "explosion"
	case EffectShape:
		return "shape"
	default:
		return "unknown"
	}
}

// EffectBands are cumulative upper bounds for one uniform roll in [0,1).
// A roll below Supernova spawns a supernova, a roll below Spiral a spiral,
// and so on. Rolls at or above Shape spawn nothing.
type EffectBands struct {
	Supernova float64
	Spiral    float64
	Comet     float64
	Explosion float64
	Shape     float64
}

func DefaultEffectBands() EffectBands {
	return EffectBands{Supernova: 0.08, Spiral: 0.12, Comet: 0.18, Explosion: 0.22, Shape: 0.30}
}

// Validate checks the bands are ordered and inside [0,1].
func (b EffectBands) Validate() error {
	bounds := []float64{0, b.Supernova, b.Spiral, b.Comet, b.Explosion, b.Shape, 1}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			return fmt.Errorf("effect bands must be non-decreasing within [0,1], got %+v", b)
		}
	}
	return nil
}

// Pick maps a roll to its effect.
func (b EffectBands) Pick(roll float64) Effect {
	switch {
	case roll < b.Supernova:
		return EffectSupernova
	case roll < b.Spiral:
		return EffectSpiral
	case roll < b.Comet:
		return EffectComet
	case roll < b.Explosion:
		return EffectExplosion
	case roll < b.Shape:
		return EffectShape
	default:
		return EffectNone
	}
}

// Sparkler plays the short high blip that accompanies big effects.
type Sparkler interface {
	PlaySparkle()
}

type Option func(*config)

type config struct {
	rng      *rand.Rand
	player   music.TonePlayer
	logger   *tlog.Logger
	bands    EffectBands
	songs    []music.Song
	songsSet bool
	hud      bool
	sparkles bool
}

func defaultConfig() config {
	return config{logger: tlog.Discard(), bands: DefaultEffectBands(), hud: true}
}

// WithSeed makes every roll reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) {
		cfg.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(cfg *config) {
		if rng != nil {
			cfg.rng = rng
		}
	}
}

// WithTonePlayer routes notes to p. Without one the toy is silent.
func WithTonePlayer(p music.TonePlayer) Option {
	return func(cfg *config) {
		cfg.player = p
	}
}

func WithLogger(l *tlog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

func WithEffectBands(b EffectBands) Option {
	return func(cfg *config) {
		cfg.bands = b
	}
}

// WithSongs replaces the built-in songbook.
func WithSongs(songs ...music.Song) Option {
	return func(cfg *config) {
		cfg.songs = append([]music.Song(nil), songs...)
		cfg.songsSet = true
	}
}

// WithHUD toggles the song banner. It is on by default.
func WithHUD(enabled bool) Option {
	return func(cfg *config) {
		cfg.hud = enabled
	}
}

// WithSparkles plays a sparkle with every supernova and explosion when the
// tone player also implements Sparkler.
func WithSparkles(enabled bool) Option {
	return func(cfg *config) {
		cfg.sparkles = enabled
	}
}

// Toy ties input to the sequencer, the note glyphs and the particle effects.
// Drive Trigger, Update and Draw from one goroutine.
type Toy struct {
	log      *tlog.Logger
	rng      *rand.Rand
	bands    EffectBands
	seq      *music.Sequencer
	fx       *notefx.Visualizer
	entities *entity.Manager
	banner   *hud.Banner
	sparkler Sparkler
	w, h     float64
	ticks    int
}

// New builds a toy for a w×h canvas.
func New(w, h float64, opts ...Option) (*Toy, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("canvas size must be positive")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.bands.Validate(); err != nil {
		return nil, err
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	seqOpts := []music.Option{music.WithLogger(cfg.logger.Named("music"))}
	if cfg.songsSet {
		if len(cfg.songs) == 0 {
			return nil, errors.New("songbook must not be empty")
		}
		seqOpts = append(seqOpts, music.WithSongs(cfg.songs...))
	}
	t := &Toy{
		log:      cfg.logger.Named("toy"),
		rng:      cfg.rng,
		bands:    cfg.bands,
		seq:      music.NewSequencer(cfg.player, seqOpts...),
		fx:       notefx.NewVisualizer(cfg.rng),
		entities: entity.NewManager(entity.Bounds{W: w, H: h}, cfg.rng),
		w:        w,
		h:        h,
	}
	if cfg.hud {
		t.banner = hud.NewBanner(t.seq.CurrentInfo())
	}
	if sp, ok := cfg.player.(Sparkler); ok && cfg.sparkles {
		t.sparkler = sp
	}
	return t, nil
}

// Trigger plays the next note at (x, y) and rolls for an effect there.
func (t *Toy) Trigger(x, y float64) Effect {
	tok, freq := t.seq.Advance()
	t.fx.Spawn(x, y, tok, freq)

	effect := t.bands.Pick(t.rng.Float64())
	switch effect {
	case EffectSupernova:
		t.entities.AddSupernova(x, y)
	case EffectSpiral:
		t.entities.AddSpiral(x, y)
	case EffectComet:
		t.entities.AddComet(x, y)
	case EffectExplosion:
		t.entities.AddExplosion(x, y)
	case EffectShape:
		t.entities.AddShape(x, y)
	}
	if effect != EffectNone {
		t.log.Debugf("spawned %s at (%.0f, %.0f)", effect, x, y)
	}
	if t.sparkler != nil && (effect == EffectSupernova || effect == EffectExplosion) {
		t.sparkler.PlaySparkle()
	}
	if t.banner != nil {
		t.banner.Note(t.seq.CurrentInfo())
	}
	return effect
}

// Tap is Trigger for pointer input: taps on the song banner switch songs
// instead of playing.
func (t *Toy) Tap(x, y float64) Effect {
	if t.banner != nil && t.banner.Contains(t.w, x, y) {
		t.NextSong()
		return EffectNone
	}
	return t.Trigger(x, y)
}

// Key triggers at a random point in the upper part of the canvas.
func (t *Toy) Key() Effect {
	return t.Trigger(t.rng.Float64()*t.w, t.rng.Float64()*t.h*keyArea)
}

func (t *Toy) NextSong() music.Song {
	song := t.seq.SwitchToNextSong()
	t.showBanner()
	return song
}

// SwitchSong activates key. Unknown keys change nothing.
func (t *Toy) SwitchSong(key string) bool {
	if !t.seq.SwitchSong(key) {
		t.log.Warnf("unknown song %q", key)
		return false
	}
	t.showBanner()
	return true
}

// SwitchSongIndex activates the i-th song of the playlist, counting from 0.
func (t *Toy) SwitchSongIndex(i int) bool {
	songs := t.seq.Songs()
	if i < 0 || i >= len(songs) {
		return false
	}
	return t.SwitchSong(songs[i].Key)
}

func (t *Toy) ResetSong() {
	t.seq.Reset()
	t.showBanner()
}

func (t *Toy) showBanner() {
	if t.banner != nil {
		t.banner.Show(t.seq.CurrentInfo())
	}
}

// AddSong registers a custom song written in the number notation.
func (t *Toy) AddSong(key, name, emoji, notes string) error {
	return t.seq.AddSong(key, name, emoji, notes)
}

func (t *Toy) Songs() []music.SongEntry { return t.seq.Songs() }

func (t *Toy) Info() music.Info { return t.seq.CurrentInfo() }

// Update advances the simulation one tick.
func (t *Toy) Update() {
	t.entities.Update()
	t.fx.Update()
	if t.banner != nil {
		t.banner.Update(TickSeconds)
	}
	t.ticks++
	if t.ticks%statsEvery == 0 {
		info := t.seq.CurrentInfo()
		t.log.Infof("stats: %d effects, %d notes, %s %d/%d",
			t.entities.Count(), t.fx.Count(), info.Name, info.Progress, info.Total)
	}
}

// Draw paints the trail wash, then the effects, then the note glyphs. The
// surface should keep its pixels between frames for the trails to show.
func (t *Toy) Draw(s surface.Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, trailColor)
	t.entities.Draw(s)
	t.fx.Draw(s)
}

// DrawHUD paints the song banner. Draw it on a layer that is redrawn from
// scratch every frame so it does not smear into the trails.
func (t *Toy) DrawHUD(s surface.Surface) {
	if t.banner != nil {
		t.banner.Draw(s)
	}
}

// Resize changes the canvas. Live effects keep bouncing inside the old one.
func (t *Toy) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	t.w, t.h = w, h
	t.entities.Resize(entity.Bounds{W: w, H: h})
}

func (t *Toy) Size() (float64, float64) { return t.w, t.h }

func (t *Toy) EffectCount() int { return t.entities.Count() }

func (t *Toy) GlyphCount() int { return t.fx.Count() }

func (t *Toy) Ticks() int { return t.ticks }

// Package audio turns note requests into sound. Synth builds a short
// enveloped beep streamer per tone and mixes them; the result can be pulled
// by the ebiten audio player, pushed to beep's speaker, or rendered offline.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	beepfx "github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	intfx "github.com/cbegin/tinytaps-go/internal/effects"
	tlog "github.com/cbegin/tinytaps-go/internal/log"
)

// Waveform is the oscillator shape for every tone.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseWaveform accepts "sine", "square" or "triangle".
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "":
		return Sine, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	default:
		return Sine, fmt.Errorf("unknown waveform %q (want sine, square or triangle)", s)
	}
}

const (
	peakGain    = 0.1
	tailGain    = 0.01
	attackSecs  = 0.05
	sparkleSecs = 0.15
)

type Option func(*synthConfig)

type synthConfig struct {
	wave    Waveform
	volume  float64
	echo    bool
	room    bool
	tremolo bool
	rng     *rand.Rand
	log     *tlog.Logger
}

func defaultSynthConfig() synthConfig {
	return synthConfig{wave: Sine, volume: 1, log: tlog.Discard()}
}

func WithWaveform(w Waveform) Option {
	return func(cfg *synthConfig) {
		cfg.wave = w
	}
}

// WithGain sets the master volume in [0, 1]. Zero mutes.
func WithGain(v float64) Option {
	return func(cfg *synthConfig) {
		cfg.volume = v
	}
}

// WithEcho adds a short stereo echo to the mix.
func WithEcho(enabled bool) Option {
	return func(cfg *synthConfig) {
		cfg.echo = enabled
	}
}

// WithTremolo adds a gentle level wobble to the mix.
func WithTremolo(enabled bool) Option {
	return func(cfg *synthConfig) {
		cfg.tremolo = enabled
	}
}

// WithRoom adds a small room reverb to the mix.
func WithRoom(enabled bool) Option {
	return func(cfg *synthConfig) {
		cfg.room = enabled
	}
}

// WithRand sets the source for sparkle pitches.
func WithRand(rng *rand.Rand) Option {
	return func(cfg *synthConfig) {
		cfg.rng = rng
	}
}

func WithLogger(l *tlog.Logger) Option {
	return func(cfg *synthConfig) {
		if l != nil {
			cfg.log = l
		}
	}
}

// Synth mixes fire-and-forget tones. PlayTone runs on the game goroutine
// while Stream or Process runs on the audio device's; a mutex guards the
// mixer between them.
type Synth struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	wave   Waveform
	rng    *rand.Rand
	log    *tlog.Logger
	mixer  *beep.Mixer
	fx     *intfx.Chain
	out    beep.Streamer
	frames [][2]float64
	played int
}

func NewSynth(sampleRate int, opts ...Option) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultSynthConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rate := beep.SampleRate(sampleRate)
	s := &Synth{
		rate:  rate,
		wave:  cfg.wave,
		rng:   cfg.rng,
		log:   cfg.log,
		mixer: &beep.Mixer{},
		fx:    intfx.NewChain(),
	}
	if cfg.tremolo {
		s.fx.Add(intfx.NewTremolo(rate, 5, 0.25))
	}
	if cfg.echo {
		s.fx.Add(intfx.NewEcho(rate, 180, 0.3, 0.4, 0.25))
	}
	if cfg.room {
		s.fx.Add(intfx.NewRoom(rate, 0.4, 0.6, 0.2))
	}
	s.fx.Add(intfx.NewLimiter(rate, -6, 8, 1, 80))
	s.out = masterVolume(intfx.Apply(s.mixer, s.fx), cfg.volume)
	return s, nil
}

// masterVolume maps a linear gain onto beep's exponential volume control.
func masterVolume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &beepfx.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &beepfx.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func (s *Synth) SampleRate() int { return int(s.rate) }

func (s *Synth) Waveform() Waveform { return s.wave }

// PlayTone starts a tone of freq Hz lasting seconds. Pitches outside
// (0, Nyquist) and non-positive durations are dropped.
func (s *Synth) PlayTone(freq, seconds float64) {
	if freq <= 0 || seconds <= 0 {
		return
	}
	t, err := s.newTone(freq, seconds)
	if err != nil {
		s.log.Warnf("tone %.2f Hz: %v", freq, err)
		return
	}
	s.mu.Lock()
	s.mixer.Add(t)
	s.played++
	s.mu.Unlock()
}

// PlaySparkle plays a short high blip between 800 and 1200 Hz.
func (s *Synth) PlaySparkle() {
	s.mu.Lock()
	freq := 800 + s.rng.Float64()*400
	s.mu.Unlock()
	s.PlayTone(freq, sparkleSecs)
}

// Active reports how many tones are still sounding.
func (s *Synth) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}

// Played reports how many tones have been started.
func (s *Synth) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Stop silences every sounding tone and clears effect tails.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mixer.Clear()
	s.fx.Reset()
}

// Stream implements beep.Streamer. The mix never drains; with nothing
// playing it streams silence.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Stream(samples)
}

func (s *Synth) Err() error { return nil }

// Process fills interleaved stereo float32 samples.
func (s *Synth) Process(dst []float32) {
	frames := len(dst) / 2
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(s.frames) < frames {
		s.frames = make([][2]float64, frames)
	}
	buf := s.frames[:frames]
	n, _ := s.out.Stream(buf)
	for i := 0; i < frames; i++ {
		var l, r float64
		if i < n {
			l, r = buf[i][0], buf[i][1]
		}
		dst[2*i] = float32(l)
		dst[2*i+1] = float32(r)
	}
}

func (s *Synth) newTone(freq, seconds float64) (*tone, error) {
	var src beep.Streamer
	switch s.wave {
	case Sine:
		sine, err := generators.SineTone(s.rate, freq)
		if err != nil {
			return nil, err
		}
		src = sine
	default:
		if freq >= float64(s.rate)/2 {
			return nil, fmt.Errorf("frequency must be below %d Hz", int(s.rate)/2)
		}
		src = &oscillator{step: freq / float64(s.rate), wave: s.wave}
	}
	total := max(int(seconds*float64(s.rate)), 1)
	attack := min(int(attackSecs*float64(s.rate)), total)
	return &tone{src: src, total: total, attack: attack}, nil
}

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

const ebitenBufferSize = 60 * time.Millisecond

// SampleSource fills interleaved stereo float32 frames.
type SampleSource interface {
	Process(dst []float32)
}

// StreamReader adapts a SampleSource to the little-endian float32 byte
// stream ebiten's F32 players read.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// EbitenOutput plays a Synth through ebiten's audio context. The synth
// stream never ends, so the player runs until Close.
type EbitenOutput struct {
	player *ebitaudio.Player
	reader *StreamReader
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten context; ebiten allows
// only one and it cannot change rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewEbitenOutput(s *Synth) (*EbitenOutput, error) {
	ctx, err := sharedAudioContext(s.SampleRate())
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(s)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("audio player: %w", err)
	}
	// Keep latency low so a tap and its note line up.
	pl.SetBufferSize(ebitenBufferSize)
	return &EbitenOutput{player: pl, reader: reader}, nil
}

func (o *EbitenOutput) Play()           { o.player.Play() }
func (o *EbitenOutput) Pause()          { o.player.Pause() }
func (o *EbitenOutput) IsPlaying() bool { return o.player.IsPlaying() }

func (o *EbitenOutput) Close() error {
	o.player.Pause()
	o.player.Close()
	return o.reader.Close()
}

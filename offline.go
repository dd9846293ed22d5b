package tinytaps

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"

	"github.com/cbegin/tinytaps-go/internal/audio"
	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface/ggsurf"
)

// SongRender configures RenderSong.
type SongRender struct {
	SampleRate int
	// Waveform is sine, square or triangle. Empty means sine.
	Waveform string
	// Notes is how many taps to render. 0 renders the song once.
	Notes int
	// Gap is the time between taps in seconds. 0 means one note length.
	Gap  float64
	Echo bool
	Room bool
}

// renderTail lets the last note and any effect tail ring out.
const renderTail = 1.0

// RenderSong taps through the song key at a steady pace and returns the
// interleaved stereo mix.
func RenderSong(key string, cfg SongRender) ([]float32, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", cfg.SampleRate)
	}
	wave := audio.Sine
	if cfg.Waveform != "" {
		w, err := audio.ParseWaveform(cfg.Waveform)
		if err != nil {
			return nil, err
		}
		wave = w
	}
	synth, err := audio.NewSynth(cfg.SampleRate,
		audio.WithWaveform(wave),
		audio.WithEcho(cfg.Echo),
		audio.WithRoom(cfg.Room),
		audio.WithRand(rand.New(rand.NewPCG(1, 1))),
	)
	if err != nil {
		return nil, err
	}
	seq := music.NewSequencer(synth)
	if !seq.SwitchSong(key) {
		return nil, fmt.Errorf("unknown song %q", key)
	}
	notes := cfg.Notes
	if notes <= 0 {
		notes = seq.CurrentInfo().Total
	}
	gap := cfg.Gap
	if gap <= 0 {
		gap = 0.5
	}
	step := int(gap * float64(cfg.SampleRate))
	tail := int(renderTail * float64(cfg.SampleRate))
	out := make([]float32, (notes*step+tail)*2)
	for i := 0; i < notes; i++ {
		seq.Advance()
		synth.Process(out[i*step*2 : (i+1)*step*2])
	}
	synth.Process(out[notes*step*2:])
	return out, nil
}

type wavHeader struct {
	RIFF       [4]byte
	ChunkSize  uint32
	WAVE       [4]byte
	Fmt        [4]byte
	FmtSize    uint32
	Format     uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	Data       [4]byte
	DataSize   uint32
}

const wavFormatFloat = 3

// EncodeWAVFloat32LE wraps interleaved float32 samples in a WAVE file.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := uint32(len(samples) * 4)
	hdr := wavHeader{
		RIFF:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:  36 + dataSize,
		WAVE:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     wavFormatFloat,
		Channels:   uint16(channels),
		SampleRate: uint32(sampleRate),
		ByteRate:   uint32(sampleRate * channels * 4),
		BlockAlign: uint16(channels * 4),
		Bits:       32,
		Data:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:   dataSize,
	}
	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, hdr)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// FrameRender configures RenderFrames.
type FrameRender struct {
	Width, Height int
	Frames        int
	// TapEvery is the number of ticks between simulated taps.
	TapEvery int
	Seed     uint64
	HUD      bool
	Song     string
}

var black = color.NRGBA{A: 255}

// RenderFrames runs a simulated tap session and writes every frame as a PNG
// to the writer next returns for it.
func RenderFrames(cfg FrameRender, next func(frame int) (io.WriteCloser, error)) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", cfg.Frames)
	}
	surf, err := ggsurf.New(cfg.Width, cfg.Height, 0)
	if err != nil {
		return err
	}
	surf.Clear(black)
	toy, err := New(float64(cfg.Width), float64(cfg.Height), WithSeed(cfg.Seed), WithHUD(cfg.HUD))
	if err != nil {
		return err
	}
	if cfg.Song != "" && !toy.SwitchSong(cfg.Song) {
		return fmt.Errorf("unknown song %q", cfg.Song)
	}
	taps := rand.New(rand.NewPCG(cfg.Seed, 0))
	every := max(cfg.TapEvery, 1)
	for f := 0; f < cfg.Frames; f++ {
		if f%every == 0 {
			toy.Tap(taps.Float64()*float64(cfg.Width), (0.2+taps.Float64()*0.8)*float64(cfg.Height))
		}
		toy.Update()
		toy.Draw(surf)
		frame := surf
		if cfg.HUD {
			frame = surf.Snapshot()
			toy.DrawHUD(frame)
		}
		if err := writeFrame(frame, f, next); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(s *ggsurf.Surface, f int, next func(int) (io.WriteCloser, error)) error {
	w, err := next(f)
	if err != nil {
		return err
	}
	if err := s.EncodePNG(w); err != nil {
		w.Close()
		return fmt.Errorf("frame %d: %w", f, err)
	}
	return w.Close()
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/tinytaps-go"
	"github.com/cbegin/tinytaps-go/internal/audio"
	tlog "github.com/cbegin/tinytaps-go/internal/log"
	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface/ebitensurf"
)

const (
	sampleRate = 48000
	fontSize   = 20
)

var bgColor = color.RGBA{10, 10, 10, 255}

var songKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type game struct {
	toy  *tinytaps.Toy
	surf *ebitensurf.Surface
	// canvas keeps last frame's pixels so the trail wash can fade them.
	canvas *ebiten.Image
	out    *audio.EbitenOutput

	keys    []ebiten.Key
	touches []ebiten.TouchID
	showFPS bool

	viewW int
	viewH int
}

func (g *game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.toy.Tap(float64(x), float64(y))
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.toy.Tap(float64(x), float64(y))
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if err := g.handleKey(k); err != nil {
			return err
		}
	}
	g.toy.Update()
	return nil
}

func (g *game) handleKey(k ebiten.Key) error {
	switch k {
	case ebiten.KeyEscape:
		return ebiten.Termination
	case ebiten.KeyTab:
		g.toy.NextSong()
	case ebiten.KeyBackspace:
		g.toy.ResetSong()
	case ebiten.KeyF1:
		g.showFPS = !g.showFPS
	default:
		for i, sk := range songKeys {
			if k == sk {
				g.toy.SwitchSongIndex(i)
				return nil
			}
		}
		g.toy.Key()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		return
	}
	g.surf.SetTarget(g.canvas)
	g.toy.Draw(g.surf)
	screen.DrawImage(g.canvas, nil)

	g.surf.SetTarget(screen)
	g.toy.DrawHUD(g.surf)
	if g.showFPS {
		info := g.toy.Info()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  effects %d  notes %d  %s %d/%d",
			ebiten.ActualFPS(), g.toy.EffectCount(), g.toy.GlyphCount(), info.Key, info.Progress, info.Total))
	}
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.viewW || outsideH != g.viewH || g.canvas == nil {
		g.viewW, g.viewH = outsideW, outsideH
		g.canvas = ebiten.NewImage(outsideW, outsideH)
		g.canvas.Fill(bgColor)
		g.toy.Resize(float64(outsideW), float64(outsideH))
	}
	return outsideW, outsideH
}

func (g *game) Close() {
	if g.out != nil {
		if err := g.out.Close(); err != nil {
			log.Printf("close audio: %v", err)
		}
	}
}

func main() {
	var (
		width    = flag.Int("width", 1024, "window width")
		height   = flag.Int("height", 768, "window height")
		seed     = flag.Uint64("seed", 0, "random seed (0 = random)")
		songName = flag.String("song", "twinkle", "starting song: twinkle|babyshark|bee|pokemon")
		waveName = flag.String("wave", "sine", "tone waveform: sine|square|triangle")
		volume   = flag.Float64("volume", 1.0, "master volume scalar")
		level    = flag.String("log-level", "info", "log level: "+tlog.LevelNames)
		mute     = flag.Bool("mute", false, "run without audio")
		sparkle  = flag.Bool("sparkle", true, "play a sparkle with supernovas and explosions")
		echo     = flag.Bool("echo", false, "add a stereo echo")
		room     = flag.Bool("room", false, "add a room reverb")
		tremolo  = flag.Bool("tremolo", false, "add a gentle tremolo")
	)
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid window size %dx%d", *width, *height)
	}
	wave, err := audio.ParseWaveform(*waveName)
	if err != nil {
		log.Fatal(err)
	}
	key, err := music.ParseSongKey(*songName, music.DefaultSongs())
	if err != nil {
		log.Fatal(err)
	}
	logLevel, err := tlog.ParseLevel(*level)
	if err != nil {
		log.Fatal(err)
	}
	logger := tlog.New(os.Stderr, logLevel)

	g := &game{}
	opts := []tinytaps.Option{tinytaps.WithLogger(logger), tinytaps.WithSparkles(*sparkle)}
	if *seed != 0 {
		opts = append(opts, tinytaps.WithSeed(*seed))
	}
	if !*mute {
		synth, err := audio.NewSynth(sampleRate,
			audio.WithWaveform(wave),
			audio.WithGain(*volume),
			audio.WithEcho(*echo),
			audio.WithRoom(*room),
			audio.WithTremolo(*tremolo),
			audio.WithLogger(logger.Named("audio")),
		)
		if err != nil {
			log.Fatal(err)
		}
		if out, err := audio.NewEbitenOutput(synth); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			g.out = out
			out.Play()
			opts = append(opts, tinytaps.WithTonePlayer(synth))
		}
	}
	toy, err := tinytaps.New(float64(*width), float64(*height), opts...)
	if err != nil {
		log.Fatal(err)
	}
	toy.SwitchSong(key)
	g.toy = toy
	if g.surf, err = ebitensurf.New(fontSize); err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("tinytaps")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

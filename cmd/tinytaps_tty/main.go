package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cbegin/tinytaps-go"
	"github.com/cbegin/tinytaps-go/internal/audio"
	tlog "github.com/cbegin/tinytaps-go/internal/log"
	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface/termsurf"
)

const (
	sampleRate = 44100
	// Terminal cells are about twice as tall as wide.
	cellW = 8
	cellH = 16
)

type game struct {
	screen  tcell.Screen
	toy     *tinytaps.Toy
	surf    *termsurf.Surface
	speaker *audio.SpeakerOutput
	// pressed tracks the left button so a drag taps once.
	pressed bool
}

func (g *game) resize() {
	cols, rows := g.screen.Size()
	g.surf.Resize(cols, rows)
	w, h := g.surf.Size()
	g.toy.Resize(w, h)
	g.screen.Clear()
}

// handleInput returns false when the player quits.
func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			g.toy.NextSong()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			g.toy.ResetSong()
		case tcell.KeyRune:
			if r := ev.Rune(); r >= '1' && r <= '9' {
				g.toy.SwitchSongIndex(int(r - '1'))
				return true
			}
			g.toy.Key()
		default:
			g.toy.Key()
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !g.pressed {
			col, row := ev.Position()
			g.toy.Tap(g.surf.Point(col, row))
		}
		g.pressed = down
	case *tcell.EventResize:
		g.resize()
	}
	return true
}

func (g *game) draw() {
	g.surf.BeginFrame()
	g.toy.Draw(g.surf)
	g.toy.DrawHUD(g.surf.Overlay())
	g.surf.Flush(g.screen)
	g.screen.Show()
}

// pollEvents forwards screen events until the screen is finalized, which
// makes PollEvent return nil, or until done closes.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (g *game) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(g.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.toy.Update()
			g.draw()
		}
	}
}

func (g *game) cleanup() {
	if g.speaker != nil {
		g.speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	var (
		seed     = flag.Uint64("seed", 0, "random seed (0 = random)")
		songName = flag.String("song", "twinkle", "starting song: twinkle|babyshark|bee|pokemon")
		waveName = flag.String("wave", "sine", "tone waveform: sine|square|triangle")
		volume   = flag.Float64("volume", 1.0, "master volume scalar")
		level    = flag.String("log-level", "info", "log level: "+tlog.LevelNames)
		logPath  = flag.String("log-file", "", "write logs here; the terminal is busy drawing")
		mute     = flag.Bool("mute", false, "run without audio")
		sparkle  = flag.Bool("sparkle", true, "play a sparkle with supernovas and explosions")
	)
	flag.Parse()

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
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logOut = f
		log.SetOutput(f)
	}
	logger := tlog.New(logOut, logLevel)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()

	g := &game{screen: screen}
	defer g.cleanup()

	opts := []tinytaps.Option{tinytaps.WithLogger(logger), tinytaps.WithSparkles(*sparkle)}
	if *seed != 0 {
		opts = append(opts, tinytaps.WithSeed(*seed))
	}
	if !*mute {
		synth, err := audio.NewSynth(sampleRate, audio.WithWaveform(wave), audio.WithGain(*volume), audio.WithLogger(logger.Named("audio")))
		if err != nil {
			screen.Fini()
			log.Fatal(err)
		}
		// Non-fatal, the toy still plays silently.
		if out, err := audio.OpenSpeaker(synth); err != nil {
			logger.Warnf("audio disabled: %v", err)
		} else {
			g.speaker = out
			opts = append(opts, tinytaps.WithTonePlayer(synth))
		}
	}

	cols, rows := screen.Size()
	g.surf = termsurf.New(cols, rows, cellW, cellH)
	w, h := g.surf.Size()
	toy, err := tinytaps.New(max(w, cellW), max(h, cellH), opts...)
	if err != nil {
		g.cleanup()
		log.Fatal(err)
	}
	toy.SwitchSong(key)
	g.toy = toy

	g.run()
}

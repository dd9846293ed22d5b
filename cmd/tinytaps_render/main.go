package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cbegin/tinytaps-go"
	"github.com/cbegin/tinytaps-go/internal/music"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		songName   = flag.String("song", "twinkle", "song to render: twinkle|babyshark|bee|pokemon")
		waveName   = flag.String("wave", "sine", "tone waveform: sine|square|triangle")
		notes      = flag.Int("notes", 0, "number of taps to render (0 = the whole song once)")
		gap        = flag.Float64("gap", 0.5, "seconds between taps")
		echo       = flag.Bool("echo", false, "add a stereo echo")
		room       = flag.Bool("room", false, "add a room reverb")
		wavPath    = flag.String("out", "tinytaps.wav", "WAV output path (empty to skip)")
		framesDir  = flag.String("frames", "", "directory for PNG frames of a simulated tap session (empty to skip)")
		frameCount = flag.Int("frame-count", 180, "number of frames to render")
		width      = flag.Int("width", 640, "frame width")
		height     = flag.Int("height", 480, "frame height")
		tapEvery   = flag.Int("tap-every", 15, "ticks between simulated taps")
		seed       = flag.Uint64("seed", 1, "random seed for the tap session")
		hud        = flag.Bool("hud", true, "draw the song banner on frames")
	)
	flag.Parse()

	key, err := music.ParseSongKey(*songName, music.DefaultSongs())
	if err != nil {
		log.Fatal(err)
	}

	if *wavPath != "" {
		samples, err := tinytaps.RenderSong(key, tinytaps.SongRender{
			SampleRate: *sampleRate,
			Waveform:   *waveName,
			Notes:      *notes,
			Gap:        *gap,
			Echo:       *echo,
			Room:       *room,
		})
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*wavPath, tinytaps.EncodeWAVFloat32LE(samples, *sampleRate, 2), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%.1fs)\n", *wavPath, float64(len(samples)/2)/float64(*sampleRate))
	}

	if *framesDir != "" {
		if err := os.MkdirAll(*framesDir, 0o755); err != nil {
			log.Fatal(err)
		}
		err := tinytaps.RenderFrames(tinytaps.FrameRender{
			Width:    *width,
			Height:   *height,
			Frames:   *frameCount,
			TapEvery: *tapEvery,
			Seed:     *seed,
			HUD:      *hud,
			Song:     key,
		}, func(frame int) (io.WriteCloser, error) {
			return os.Create(filepath.Join(*framesDir, fmt.Sprintf("frame_%05d.png", frame)))
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frames to %s\n", *frameCount, *framesDir)
	}
}

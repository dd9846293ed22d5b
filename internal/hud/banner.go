// Package hud draws the song banner: the current song's emoji and name with
// a progress line. The banner drops in with a bounce when the song changes
// and pulses on every note.
package hud

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	Width  = 260
	Height = 64
	margin = 20

	dropFrom    = -Height - margin
	dropSeconds = 0.6
	pulseScale  = 1.12
	pulseSecs   = 0.25
)

var (
	panelColor  = surface.RGBA(20, 24, 32, 0.85)
	borderColor = surface.ParseHex("#64ffda")
	textColor   = surface.ParseHex("#ffffff")
	hintColor   = surface.RGBA(255, 255, 255, 0.7)
)

// Banner is owned by the game loop. Update takes elapsed seconds.
type Banner struct {
	info  music.Info
	drop  *gween.Tween
	pulse *gween.Tween

	offset float32
	scale  float32
}

func NewBanner(info music.Info) *Banner {
	b := &Banner{scale: 1}
	b.Show(info)
	return b
}

// Show replaces the song and replays the drop-in.
func (b *Banner) Show(info music.Info) {
	b.info = info
	b.offset = dropFrom
	b.drop = gween.New(dropFrom, 0, dropSeconds, ease.OutBounce)
}

// Note refreshes progress and starts a pulse.
func (b *Banner) Note(info music.Info) {
	if info.Key != b.info.Key {
		b.Show(info)
		return
	}
	b.info = info
	b.pulse = gween.New(pulseScale, 1, pulseSecs, ease.OutQuad)
}

func (b *Banner) Update(dt float32) {
	if b.drop != nil {
		v, done := b.drop.Update(dt)
		b.offset = v
		if done {
			b.offset, b.drop = 0, nil
		}
	}
	if b.pulse != nil {
		v, done := b.pulse.Update(dt)
		b.scale = v
		if done {
			b.scale, b.pulse = 1, nil
		}
	}
}

// Animating reports whether a tween is still running.
func (b *Banner) Animating() bool { return b.drop != nil || b.pulse != nil }

func (b *Banner) Offset() float64 { return float64(b.offset) }
func (b *Banner) Scale() float64  { return float64(b.scale) }

func (b *Banner) Title() string {
	return fmt.Sprintf("%s %s", b.info.Emoji, b.info.Name)
}

func (b *Banner) Hint() string {
	return fmt.Sprintf("%d/%d | Tab to switch", b.info.Progress, b.info.Total)
}

// Bar is the 20-cell progress bar with its percentage.
func (b *Banner) Bar() string {
	bar, pct := music.ProgressBar(b.info.Progress, b.info.Total)
	return fmt.Sprintf("%s %d%%", bar, pct)
}

// Rect is the banner's resting box on a canvas of width w.
func (b *Banner) Rect(w float64) (x, y, bw, bh float64) {
	return w - Width - margin, margin + b.Offset(), Width, Height
}

// Contains reports whether a tap at (x, y) lands on the banner, which
// switches songs instead of playing a note.
func (b *Banner) Contains(w, x, y float64) bool {
	rx, ry, rw, rh := b.Rect(w)
	return x >= rx && x <= rx+rw && y >= ry && y <= ry+rh
}

func (b *Banner) Draw(s surface.Surface) {
	w, _ := s.Size()
	x, y, bw, bh := b.Rect(w)
	scale := b.Scale()
	cx, cy := x+bw/2, y+bh/2
	sw, sh := bw*scale, bh*scale
	s.FillRect(cx-sw/2, cy-sh/2, sw, sh, panelColor)
	s.StrokeRect(cx-sw/2, cy-sh/2, sw, sh, 2, borderColor)
	s.Text(b.Title(), cx, cy-bh/6, textColor)
	s.Text(b.Hint(), cx, cy+bh/5, hintColor)
}

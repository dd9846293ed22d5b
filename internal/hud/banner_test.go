package hud

import (
	"strings"
	"testing"

	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface"
)

var twinkle = music.Info{Key: "twinkle", Name: "Twinkle Star", Emoji: "⭐", Progress: 3, Total: 42}

func settle(b *Banner) {
	for i := 0; i < 120 && b.Animating(); i++ {
		b.Update(1.0 / 60)
	}
}

func TestDropInBounces(t *testing.T) {
	b := NewBanner(twinkle)
	if b.Offset() != dropFrom {
		t.Fatalf("offset = %v, want %v", b.Offset(), float64(dropFrom))
	}
	b.Update(0.1)
	if b.Offset() <= dropFrom || b.Offset() > 0 {
		t.Fatalf("offset mid-drop = %v", b.Offset())
	}
	settle(b)
	if b.Animating() || b.Offset() != 0 {
		t.Fatalf("offset after settle = %v, animating=%v", b.Offset(), b.Animating())
	}
}

func TestNotePulses(t *testing.T) {
	b := NewBanner(twinkle)
	settle(b)
	next := twinkle
	next.Progress = 4
	b.Note(next)
	b.Update(0)
	if b.Scale() <= 1 {
		t.Fatalf("scale = %v, want pulse above 1", b.Scale())
	}
	settle(b)
	if b.Scale() != 1 {
		t.Fatalf("scale after pulse = %v", b.Scale())
	}
	if !strings.HasPrefix(b.Hint(), "4/42") {
		t.Fatalf("hint = %q", b.Hint())
	}
}

func TestNoteFromOtherSongDropsIn(t *testing.T) {
	b := NewBanner(twinkle)
	settle(b)
	b.Note(music.Info{Key: "bee", Name: "Little Bee", Emoji: "🐝", Progress: 1, Total: 48})
	if b.Offset() != dropFrom {
		t.Fatalf("song change should restart the drop, offset = %v", b.Offset())
	}
	if b.Title() != "🐝 Little Bee" {
		t.Fatalf("title = %q", b.Title())
	}
}

func TestTextLines(t *testing.T) {
	b := NewBanner(twinkle)
	if got, want := b.Hint(), "3/42 | Tab to switch"; got != want {
		t.Fatalf("hint = %q, want %q", got, want)
	}
	bar := b.Bar()
	if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 20 {
		t.Fatalf("bar has %d cells, want 20: %q", n, bar)
	}
	if !strings.HasSuffix(bar, " 7%") {
		t.Fatalf("bar = %q, want 7%%", bar)
	}
}

func TestContainsAndDraw(t *testing.T) {
	b := NewBanner(twinkle)
	settle(b)
	rec := surface.NewRecorder(800, 600)
	b.Draw(rec)
	if rec.Count(surface.OpFillRect) != 1 || rec.Count(surface.OpText) != 2 {
		t.Fatalf("ops = %+v", rec.Ops)
	}
	x, y, w, h := b.Rect(800)
	if !b.Contains(800, x+w/2, y+h/2) {
		t.Fatal("center of banner not contained")
	}
	if b.Contains(800, 10, 300) {
		t.Fatal("far-left point reported inside the banner")
	}
}

package notefx

import (
	"image/color"

	"github.com/cbegin/tinytaps-go/internal/music"
	"github.com/cbegin/tinytaps-go/internal/surface"
)

const (
	flatFactor = 0.8
	lowFactor  = 0.7
	highFactor = 1.3
)

var degreeColors = [8]color.NRGBA{
	surface.ParseHex("#95a5a6"), // rest
	surface.ParseHex("#ff6b6b"),
	surface.ParseHex("#4ecdc4"),
	surface.ParseHex("#45b7d1"),
	surface.ParseHex("#96ceb4"),
	surface.ParseHex("#feca57"),
	surface.ParseHex("#ff9ff3"),
	surface.ParseHex("#a8e6cf"),
}

var solfege = [8]string{"♪", "Do", "Re", "Mi", "Fa", "So", "La", "Ti"}

// Color is the degree color, darkened for flats and low notes and brightened
// for high notes. Factors compose, and each step floors and clamps.
func Color(tok music.Token) color.NRGBA {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if tok.Degree >= 0 && tok.Degree < len(degreeColors) {
		c = degreeColors[tok.Degree]
	}
	if tok.Accidental == music.Flat {
		c = surface.Scale(c, flatFactor)
	}
	switch tok.Octave {
	case music.Low:
		c = surface.Scale(c, lowFactor)
	case music.High:
		c = surface.Scale(c, highFactor)
	}
	return c
}

// Label is the solfège name plus flat and octave marks.
func Label(tok music.Token) string {
	text := "♪"
	if tok.Degree >= 0 && tok.Degree < len(solfege) {
		text = solfege[tok.Degree]
	}
	if tok.Accidental == music.Flat {
		text += "♭"
	}
	switch tok.Octave {
	case music.Low:
		text += "₋"
	case music.High:
		text += "⁺"
	}
	return text
}

package music

import "strings"

type Accidental int

const (
	Natural Accidental = iota
	Flat
)

type Octave int

const (
	Mid Octave = iota
	Low
	High
)

// Token is one parsed note: a scale degree 1-7 (0 is a rest) with an
// optional flat and octave shift.
type Token struct {
	Degree     int
	Accidental Accidental
	Octave     Octave
}

// IsRest reports whether t carries no pitch.
func (t Token) IsRest() bool { return t.Degree == 0 }

// String renders t back into notation, e.g. "5,", "3b." or "0".
func (t Token) String() string {
	var b strings.Builder
	b.WriteByte(byte('0' + t.Degree))
	if t.Accidental == Flat {
		b.WriteByte('b')
	}
	switch t.Octave {
	case Low:
		b.WriteByte(',')
	case High:
		b.WriteByte('.')
	}
	return b.String()
}

// Parse scans compact numbered notation into tokens. Each token is a digit
// 0-7, then an optional 'b' (flat), then an optional ',' (low) or '.'
// (high). Spaces separate nothing and are skipped. Any character that cannot
// start a token is dropped, which also discards incomplete trailing input.
func Parse(notation string) []Token {
	tokens := make([]Token, 0, len(notation))
	i := 0
	for i < len(notation) {
		ch := notation[i]
		if !isDegree(ch) {
			i++
			continue
		}
		tok := Token{Degree: int(ch - '0')}
		i++
		if i < len(notation) && notation[i] == 'b' {
			tok.Accidental = Flat
			i++
		}
		if i < len(notation) {
			switch notation[i] {
			case ',':
				tok.Octave = Low
				i++
			case '.':
				tok.Octave = High
				i++
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Format joins tokens with single spaces.
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func isDegree(ch byte) bool { return ch >= '0' && ch <= '7' }

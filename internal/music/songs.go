package music

import (
	"fmt"
	"strings"
)

// Song is a named melody. Tokens is derived from Notes once when the song is
// built and must be treated as read-only.
type Song struct {
	Key    string
	Name   string
	Emoji  string
	Notes  string
	Tokens []Token
}

// NewSong parses notes into a Song. An empty emoji defaults to a note glyph.
func NewSong(key, name, emoji, notes string) Song {
	if emoji == "" {
		emoji = "🎵"
	}
	return Song{Key: key, Name: name, Emoji: emoji, Notes: notes, Tokens: Parse(notes)}
}

// Len returns the number of tokens in the song.
func (s Song) Len() int { return len(s.Tokens) }

// SongEntry is the listing view of a registered song.
type SongEntry struct {
	Key   string
	Name  string
	Emoji string
}

// DefaultSongs returns the built-in songbook in playlist order.
func DefaultSongs() []Song {
	return []Song{
		NewSong("twinkle", "Twinkle Star", "⭐", "115566544332215544332554433211556654433221"),
		NewSong("babyshark", "Baby Shark", "🦈", "5,6,111111115,6,111111115,6,111111117,"),
		NewSong("bee", "Little Bee", "🐝", "533422123455554442213553222223433334553342213551"),
		NewSong("pokemon", "Pokemon Route 1", "⚡", "123331233312334327,12227,12227,122321"),
	}
}

// ParseSongKey normalizes name and checks it against songs, for flag
// validation.
func ParseSongKey(name string, songs []Song) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	keys := make([]string, 0, len(songs))
	for _, s := range songs {
		if s.Key == key {
			return key, nil
		}
		keys = append(keys, s.Key)
	}
	return "", fmt.Errorf("invalid -song %q (expected %s)", name, strings.Join(keys, "|"))
}

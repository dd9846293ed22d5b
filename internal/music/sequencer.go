package music

import (
	"errors"
	"fmt"

	tlog "github.com/cbegin/tinytaps-go/internal/log"
)

// TonePlayer synthesizes a single pitch. Calls must not block.
type TonePlayer interface {
	PlayTone(freq float64, seconds float64)
}

type nopPlayer struct{}

func (nopPlayer) PlayTone(float64, float64) {}

const (
	defaultNoteSeconds    = 0.5
	defaultPreviewSeconds = 0.3
)

type Option func(*config)

type config struct {
	songs          []Song
	songsSet       bool
	logger         *tlog.Logger
	noteSeconds    float64
	previewSeconds float64
}

// WithSongs replaces the built-in songbook. The first song becomes active.
// With no songs the sequencer stays silent.
func WithSongs(songs ...Song) Option {
	return func(cfg *config) {
		cfg.songs = append([]Song(nil), songs...)
		cfg.songsSet = true
	}
}

func WithLogger(l *tlog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithNoteSeconds sets how long each advanced note sounds.
func WithNoteSeconds(seconds float64) Option {
	return func(cfg *config) {
		if seconds > 0 {
			cfg.noteSeconds = seconds
		}
	}
}

// Info describes the active song and cursor.
type Info struct {
	Key      string
	Name     string
	Emoji    string
	Progress int
	Total    int
	// Display is the note just played, or the first note when nothing has
	// been played yet.
	Display Token
}

// Sequencer walks the active song one note per Advance, looping forever.
// It is not safe for concurrent use.
type Sequencer struct {
	player         TonePlayer
	log            *tlog.Logger
	table          map[Token]float64
	songs          map[string]Song
	order          []string
	current        string
	cursor         int
	noteSeconds    float64
	previewSeconds float64
}

// NewSequencer registers the songbook and selects its first song. A nil
// player makes the sequencer silent.
func NewSequencer(player TonePlayer, opts ...Option) *Sequencer {
	cfg := config{
		logger:         tlog.Discard(),
		noteSeconds:    defaultNoteSeconds,
		previewSeconds: defaultPreviewSeconds,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.songsSet {
		cfg.songs = DefaultSongs()
	}
	if player == nil {
		player = nopPlayer{}
	}
	s := &Sequencer{
		player:         player,
		log:            cfg.logger,
		table:          newFrequencyTable(),
		songs:          make(map[string]Song, len(cfg.songs)),
		noteSeconds:    cfg.noteSeconds,
		previewSeconds: cfg.previewSeconds,
	}
	for _, song := range cfg.songs {
		s.register(song)
	}
	if len(s.order) > 0 {
		s.current = s.order[0]
		song := s.songs[s.current]
		s.log.Infof("music ready, current song %s %s: %s", song.Emoji, song.Name, Format(song.Tokens))
	}
	return s
}

func (s *Sequencer) register(song Song) {
	if _, ok := s.songs[song.Key]; !ok {
		s.order = append(s.order, song.Key)
	}
	s.songs[song.Key] = song
}

// AddSong parses notes and appends the song to the playlist. Re-adding an
// existing key replaces the song in place, keeping its playlist slot.
func (s *Sequencer) AddSong(key, name, emoji, notes string) error {
	if key == "" {
		return errors.New("song key must not be empty")
	}
	song := NewSong(key, name, emoji, notes)
	if song.Len() == 0 {
		return fmt.Errorf("song %q has no playable notes", key)
	}
	s.register(song)
	if s.current == "" {
		s.current = key
	}
	if s.current == key {
		s.cursor = 0
	}
	s.log.Infof("added song %s %s (%d notes)", song.Emoji, song.Name, song.Len())
	return nil
}

// Frequency returns the pitch of tok in Hz, 0 for rests.
func (s *Sequencer) Frequency(tok Token) float64 {
	return s.table[tok]
}

// Advance plays the note under the cursor and moves past it. When the cursor
// has reached the end it wraps to the start first, so songs loop forever.
func (s *Sequencer) Advance() (Token, float64) {
	song, ok := s.songs[s.current]
	if !ok || song.Len() == 0 {
		return Token{}, 0
	}
	if s.cursor >= song.Len() {
		s.cursor = 0
		s.log.Infof("%q finished, starting over", song.Name)
	}
	tok := song.Tokens[s.cursor]
	freq := s.table[tok]
	if freq > 0 {
		s.player.PlayTone(freq, s.noteSeconds)
		s.log.Debugf("note %s (%.1fHz) %d/%d", tok, freq, s.cursor+1, song.Len())
	} else {
		s.log.Debugf("rest %d/%d", s.cursor+1, song.Len())
	}
	s.cursor++

	bar, pct := ProgressBar(s.cursor, song.Len())
	s.log.Debugf("%s %s %s %d%%", song.Emoji, song.Name, bar, pct)
	if milestone(s.cursor) {
		s.log.Infof("great job, phrase complete!")
	}
	return tok, freq
}

// CurrentInfo reports the active song and cursor.
func (s *Sequencer) CurrentInfo() Info {
	song := s.songs[s.current]
	info := Info{
		Key:      song.Key,
		Name:     song.Name,
		Emoji:    song.Emoji,
		Progress: s.cursor,
		Total:    song.Len(),
	}
	switch {
	case song.Len() == 0:
	case s.cursor == 0:
		info.Display = song.Tokens[0]
	default:
		info.Display = song.Tokens[s.cursor-1]
	}
	return info
}

// CurrentFrequency returns the pitch of CurrentInfo().Display.
func (s *Sequencer) CurrentFrequency() float64 {
	return s.table[s.CurrentInfo().Display]
}

// SwitchSong makes key the active song and rewinds it. Unknown keys change
// nothing and report false.
func (s *Sequencer) SwitchSong(key string) bool {
	song, ok := s.songs[key]
	if !ok {
		return false
	}
	s.current = key
	s.cursor = 0
	s.log.Infof("switched to %s %s", song.Emoji, song.Name)
	return true
}

// SwitchToNextSong activates the next song in playlist order, wrapping, and
// returns it.
func (s *Sequencer) SwitchToNextSong() Song {
	if len(s.order) == 0 {
		return Song{}
	}
	next := 0
	for i, key := range s.order {
		if key == s.current {
			next = (i + 1) % len(s.order)
			break
		}
	}
	s.SwitchSong(s.order[next])
	return s.songs[s.order[next]]
}

// Reset rewinds the active song.
func (s *Sequencer) Reset() {
	s.cursor = 0
	s.log.Infof("reset %s", s.songs[s.current].Name)
}

// PreviewNote sounds tok without moving the cursor.
func (s *Sequencer) PreviewNote(tok Token) {
	if freq := s.table[tok]; freq > 0 {
		s.player.PlayTone(freq, s.previewSeconds)
	}
}

// Songs lists the playlist in order.
func (s *Sequencer) Songs() []SongEntry {
	out := make([]SongEntry, 0, len(s.order))
	for _, key := range s.order {
		song := s.songs[key]
		out = append(out, SongEntry{Key: key, Name: song.Name, Emoji: song.Emoji})
	}
	return out
}

// Song returns the registered song for key.
func (s *Sequencer) Song(key string) (Song, bool) {
	song, ok := s.songs[key]
	return song, ok
}

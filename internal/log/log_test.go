package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("quiet %d", 1)
	l.Infof("quiet %d", 2)
	l.Warnf("loud %d", 3)
	l.Errorf("loud %d", 4)

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("debug/info lines leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "warn  loud 3") || !strings.Contains(out, "error loud 4") {
		t.Fatalf("missing warn/error lines: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelNone,
		"none":    LevelNone,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	_, err := ParseLevel("loud")
	if err == nil || !strings.Contains(err.Error(), LevelNames) {
		t.Fatalf("ParseLevel(loud) err = %v, want list of %s", err, LevelNames)
	}
}

func TestNamedTagsLines(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, LevelInfo)
	root.Named("music").Infof("switched to %s", "bee")
	root.Infof("bare")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "info  music: switched to bee") {
		t.Fatalf("named line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "info  bare") {
		t.Fatalf("root line = %q", lines[1])
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	l := Discard()
	if l.Level() != LevelNone || l.Enabled(LevelError) {
		t.Fatalf("discard level = %v, want none", l.Level())
	}
	l.Named("audio").Errorf("nothing to see")
}

// Package log is the leveled logger shared by the toy's subsystems. Each
// subsystem takes a Named child so lines read "12:00:01 info  music: ...".
package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

var levelNames = [...]string{"debug", "info", "warn", "error", "none"}

// LevelNames lists the accepted -log-level values, for flag help.
var LevelNames = strings.Join(levelNames[:], "|")

func (l Level) String() string {
	if l < LevelDebug || l > LevelNone {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel maps a -log-level flag value to a Level. "warning" and "off"
// are accepted as aliases.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "warning":
		return LevelWarn, nil
	case "off", "quiet":
		return LevelNone, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid -log-level %q (expected %s)", s, LevelNames)
}

type Logger struct {
	logger *log.Logger
	level  Level
	prefix string
}

// New logs to out with wall-clock time only; a play session never spans days.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.Ltime),
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0), level: LevelNone}
}

// Named returns a child that tags every line with component. The child
// shares l's output and starts at l's level.
func (l *Logger) Named(component string) *Logger {
	return &Logger{logger: l.logger, level: l.level, prefix: component + ": "}
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Enabled(level Level) bool {
	return level != LevelNone && l.level <= level
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v) }

func (l *Logger) Infof(format string, v ...any) { l.logf(LevelInfo, format, v) }

func (l *Logger) Warnf(format string, v ...any) { l.logf(LevelWarn, format, v) }

func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v) }

func (l *Logger) logf(level Level, format string, v []any) {
	if !l.Enabled(level) {
		return
	}
	l.logger.Printf("%-5s %s%s", level, l.prefix, fmt.Sprintf(format, v...))
}

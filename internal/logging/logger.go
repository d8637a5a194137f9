// Package logging holds kform's process-wide diagnostic logger.
//
// Logging is off until Init is given a file. Output goes through log/slog in
// text or JSON form; files are rotated by lumberjack and "-" selects stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Stderr as Config.File logs to standard error instead of a file.
const Stderr = "-"

// Format is the encoding of log records.
type Format string

const (
	// FormatText writes logfmt-style key=value records.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// Config is the logger setup as given on the command line.
type Config struct {
	File       string // empty disables logging
	Level      string // debug, info, warn or error; empty means info
	Format     string // text or json; empty means text
	MaxSizeMB  int
	MaxBackups int
}

var (
	discard = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

// Init replaces the global logger according to config. An invalid level or
// format leaves the previous logger in place.
func Init(config Config) error {
	if config.File == "" {
		SetLogger(nil)
		return nil
	}

	level, err := ParseLevel(config.Level)
	if err != nil {
		return err
	}
	format, err := ParseFormat(config.Format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if config.File != Stderr {
		w = &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			Compress:   true,
		}
	}
	SetLogger(New(w, level, format))
	return nil
}

// New builds a logger writing to w.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetLogger installs l as the global logger; nil disables logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// Logger returns the global logger, never nil.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return discard
}

// Enabled reports whether a log destination is configured.
func Enabled() bool {
	return Logger() != discard
}

// Debug logs at DEBUG level on the global logger.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at INFO level on the global logger.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at WARN level on the global logger.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// ParseLevel accepts the slog level names, case-insensitively.
func ParseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", level)
	}
	return l, nil
}

// ParseFormat accepts "text" or "json", case-insensitively. Empty means text.
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid log format %q (want text or json)", format)
}

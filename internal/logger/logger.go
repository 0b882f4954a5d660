// Package logger configures the process-wide slog logger: a colored text
// handler on stderr by default, or a rotating file when one is configured.
package logger

import (
	"log/slog"
	"os"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, in lumberjack terms.
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Options selects destination, level, and rotation for diagnostics.
// The contractual status lines stay on stdout and are not routed here.
type Options struct {
	Verbose    bool   // debug level instead of info
	NoColor    bool   // plain text on stderr
	File       string // when set, log to this rotating file instead of stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Setup builds a logger from Options and installs it as the slog default.
func Setup(o Options) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if o.File != "" {
		w := &lj.Logger{
			Filename:   o.File,
			MaxSize:    valOr(o.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valOr(o.MaxBackups, DefaultMaxBackups),
			MaxAge:     valOr(o.MaxAgeDays, DefaultMaxAgeDays),
			Compress:   o.Compress,
		}
		h = slog.NewTextHandler(w, opts)
	} else {
		h = NewColorHandler(os.Stderr, opts, !o.NoColor)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

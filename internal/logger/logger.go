// Package logger wraps zerolog.Logger for the fleetenv command and library.
//
// Diagnostic logging goes to stderr through a console writer so it never mixes
// with an env stream written to stdout. User-facing output is not logged; the
// command prints it directly.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger. The embedded logger exposes
// the full zerolog API.
type Logger struct {
	zerolog.Logger
}

// Options configures New.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool
}

// New returns a console logger writing to w. The level is warn by default,
// debug when Verbose is set and error when Quiet is set. Verbose wins over
// Quiet.
func New(w io.Writer, opts Options) *Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.TimeOnly,
	}
	l := zerolog.New(out).Level(Level(opts)).With().Timestamp().Logger()
	return &Logger{l}
}

// Level maps the verbosity flags onto a zerolog level.
func Level(opts Options) zerolog.Level {
	switch {
	case opts.Verbose:
		return zerolog.DebugLevel
	case opts.Quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Component returns a child logger tagged with the selected component.
func (l *Logger) Component(systemID, componentID string) *Logger {
	return &Logger{l.With().Str("system", systemID).Str("component", componentID).Logger()}
}

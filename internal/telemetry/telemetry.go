// Package telemetry wraps zerolog for the engine's operational/debug
// tracing (cache hits, job lifecycle). It never carries decode
// diagnostics — those stay attached to results as result.DecodeStatus
// data, per the engine's error-handling design. A zero-value Logger is a
// safe no-op, so callers that don't care about logging can simply omit
// it.
package telemetry

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is a thin, nil-safe wrapper around a zerolog.Logger.
type Logger struct {
	zl      zerolog.Logger
	enabled bool
}

// New builds a Logger writing to w at debug or info level.
func New(w io.Writer, debug bool) Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return Logger{
		zl:      zerolog.New(w).Level(level).With().Timestamp().Logger(),
		enabled: true,
	}
}

// Noop returns a Logger that discards everything.
func Noop() Logger { return Logger{} }

func (l Logger) event(ev *zerolog.Event, msg string, fields map[string]any) {
	if !l.enabled {
		return
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l Logger) Debug(msg string, fields map[string]any) {
	if !l.enabled {
		return
	}
	l.event(l.zl.Debug(), msg, fields)
}

func (l Logger) Info(msg string, fields map[string]any) {
	if !l.enabled {
		return
	}
	l.event(l.zl.Info(), msg, fields)
}

func (l Logger) Warn(msg string, fields map[string]any) {
	if !l.enabled {
		return
	}
	l.event(l.zl.Warn(), msg, fields)
}

func (l Logger) Error(msg string, err error, fields map[string]any) {
	if !l.enabled {
		return
	}
	l.event(l.zl.Error().Err(err), msg, fields)
}

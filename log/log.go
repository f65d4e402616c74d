// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the structured key/value logger of the module, backed by go-ethereum's log.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, in increasing severity.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to the root handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(level slog.Level) bool
}

// contextLogger resolves the root logger on every call, so package level
// loggers follow a later SetDefault.
type contextLogger struct {
	ctx []any
}

// WithContext returns a logger that prefixes every record with ctx.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

func (l *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: append(append(make([]any, 0, len(l.ctx)+len(ctx)), l.ctx...), ctx...)}
}

func (l *contextLogger) root() ethlog.Logger {
	return ethlog.Root().With(l.ctx...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }

func (l *contextLogger) Enabled(level slog.Level) bool {
	return ethlog.Root().Enabled(context.Background(), level)
}

// SetDefault replaces the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// NewTerminalHandler returns a human readable handler logging at level and above.
func NewTerminalHandler(wr io.Writer, level slog.Level, useColor bool) slog.Handler {
	return ethlog.NewTerminalHandlerWithLevel(wr, level, useColor)
}

// NewJSONHandler returns a handler emitting one json object per record.
func NewJSONHandler(wr io.Writer) slog.Handler {
	return ethlog.JSONHandler(wr)
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// ParseLevel converts a level name such as "debug" into a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace", "trce":
		return LevelTrace, nil
	case "crit":
		return LevelCrit, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return lvl, nil
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) { ethlog.Root().Debug(msg, ctx...) }

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) { ethlog.Root().Info(msg, ctx...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...any) { ethlog.Root().Warn(msg, ctx...) }

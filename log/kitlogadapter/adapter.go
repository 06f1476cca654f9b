// Package kitlogadapter provides a logger that writes to a github.com/go-kit/log.Logger.
package kitlogadapter

import (
	"context"
	"sort"

	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/jackc/pgx/v5/tracelog"
)

type Logger struct {
	l          log.Logger
	skipModule bool
}

// Option is a configuration setting for the Logger.
type Option func(logger *Logger)

// WithoutModule disables adding the module=citext pair to log lines.
func WithoutModule() Option {
	return func(logger *Logger) {
		logger.skipModule = true
	}
}

func NewLogger(l log.Logger, options ...Option) *Logger {
	logger := &Logger{l: l}
	for _, opt := range options {
		opt(logger)
	}
	if !logger.skipModule {
		logger.l = log.With(logger.l, "module", "citext")
	}
	return logger
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]any, 0, 2*len(data))
	for _, k := range keys {
		keyvals = append(keyvals, k, data[k])
	}
	logger := log.With(l.l, keyvals...)

	switch level {
	case tracelog.LogLevelTrace:
		kitlevel.Debug(logger).Log("log_level", level, "msg", msg)
	case tracelog.LogLevelDebug:
		kitlevel.Debug(logger).Log("msg", msg)
	case tracelog.LogLevelInfo:
		kitlevel.Info(logger).Log("msg", msg)
	case tracelog.LogLevelWarn:
		kitlevel.Warn(logger).Log("msg", msg)
	case tracelog.LogLevelError:
		kitlevel.Error(logger).Log("msg", msg)
	default:
		kitlevel.Error(logger).Log("invalid_log_level", level, "msg", msg)
	}
}

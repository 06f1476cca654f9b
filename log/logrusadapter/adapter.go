// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	l          logrus.FieldLogger
	skipModule bool
}

// Option is a configuration setting for the Logger.
type Option func(logger *Logger)

// WithoutModule disables adding the module=citext field to log entries.
func WithoutModule() Option {
	return func(logger *Logger) {
		logger.skipModule = true
	}
}

func NewLogger(l logrus.FieldLogger, options ...Option) *Logger {
	logger := &Logger{l: l}
	for _, opt := range options {
		opt(logger)
	}
	if !logger.skipModule {
		logger.l = logger.l.WithField("module", "citext")
	}
	return logger
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logger := l.l
	if len(data) > 0 {
		logger = logger.WithFields(data)
	}

	switch level {
	case tracelog.LogLevelTrace:
		logger.WithField("log_level", level).Debug(msg)
	case tracelog.LogLevelDebug:
		logger.Debug(msg)
	case tracelog.LogLevelInfo:
		logger.Info(msg)
	case tracelog.LogLevelWarn:
		logger.Warn(msg)
	case tracelog.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("invalid_log_level", level).Error(msg)
	}
}

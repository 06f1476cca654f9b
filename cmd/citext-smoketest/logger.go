package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/calebj/citext/log/kitlogadapter"
	"github.com/calebj/citext/log/log15adapter"
	"github.com/calebj/citext/log/logrusadapter"
	"github.com/calebj/citext/log/zapadapter"
	"github.com/calebj/citext/log/zerologadapter"
)

var loggers = map[string]func(w io.Writer) tracelog.Logger{
	"zerolog": func(w io.Writer) tracelog.Logger {
		return zerologadapter.NewLogger(zerolog.New(w).With().Timestamp().Logger())
	},
	"zap": func(w io.Writer) tracelog.Logger {
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
		return zapadapter.NewLogger(zap.New(core))
	},
	"logrus": func(w io.Writer) tracelog.Logger {
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrus.TraceLevel)
		return logrusadapter.NewLogger(l)
	},
	"kitlog": func(w io.Writer) tracelog.Logger {
		return kitlogadapter.NewLogger(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w)))
	},
	"log15": func(w io.Writer) tracelog.Logger {
		l := log15.New()
		l.SetHandler(log15.StreamHandler(w, log15.LogfmtFormat()))
		return log15adapter.NewLogger(l)
	},
}

func loggerNames() string {
	names := make([]string, 0, len(loggers))
	for name := range loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newLogger(name string, w io.Writer) (tracelog.Logger, error) {
	f, ok := loggers[name]
	if !ok {
		return nil, fmt.Errorf("unknown logger %q, want one of %s", name, loggerNames())
	}
	return f(w), nil
}

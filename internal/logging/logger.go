package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction
type Options struct {
	Level  string // trace, debug, info, warn, error
	JSON   bool
	Output io.Writer
}

// New builds a logrus logger from options. Unknown levels fall back to info.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stderr)
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// OrDiscard returns logger, or a discarding logger when it is nil
func OrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	switch l := logger.(type) {
	case nil:
		return Discard()
	case *logrus.Logger:
		if l == nil {
			return Discard()
		}
	case *logrus.Entry:
		if l == nil {
			return Discard()
		}
	}
	return logger
}

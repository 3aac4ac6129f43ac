package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the small structured-logging surface the rest of the code
// depends on.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string, err error)
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New creates a logrus-backed logger at the given level.
func New(level string) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(parsed)
	}
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// NewNop creates a logger that discards everything. Used in tests.
func NewNop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debug(msg string) { l.entry.Debug(msg) }
func (l *logrusLogger) Info(msg string)  { l.entry.Info(msg) }
func (l *logrusLogger) Warn(msg string)  { l.entry.Warn(msg) }

func (l *logrusLogger) Error(msg string, err error) {
	if err != nil {
		l.entry.WithError(err).Error(msg)
		return
	}
	l.entry.Error(msg)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithFields(fields)}
}

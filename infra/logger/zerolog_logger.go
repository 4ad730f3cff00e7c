package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a component-tagged logger. Output format is
// chosen from APP_ENV, see logWriter.
func NewZerologLogger(component string) Logger {
	z := zerolog.New(logWriter()).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

// logWriter selects the log destination: a human console writer when
// APP_ENV marks a development environment, JSON lines otherwise. Logs go
// to stderr; stdout is reserved for command output.
func logWriter() io.Writer {
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "dev", "development":
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	default:
		return os.Stderr
	}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

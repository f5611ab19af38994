// Package nsqlog routes go-nsq client logs into slog.
package nsqlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nsqio/go-nsq"
)

// Logger satisfies the logger interface expected by nsq.Producer.SetLogger
// and nsq.Consumer.SetLogger.
type Logger struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) Logger {
	return Logger{logger: logger}
}

// Output receives lines already prefixed with the nsq level, e.g. "WRN    1 ...".
func (l Logger) Output(_ int, s string) error {
	level := slog.LevelInfo
	switch {
	case strings.HasPrefix(s, nsq.LogLevelError.String()):
		level = slog.LevelError
	case strings.HasPrefix(s, nsq.LogLevelWarning.String()):
		level = slog.LevelWarn
	case strings.HasPrefix(s, nsq.LogLevelDebug.String()):
		level = slog.LevelDebug
	}
	l.logger.Log(context.Background(), level, strings.TrimSpace(s))
	return nil
}

// Level maps an slog level to the closest nsq level.
func Level(level slog.Level) nsq.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return nsq.LogLevelDebug
	case level <= slog.LevelInfo:
		return nsq.LogLevelInfo
	case level <= slog.LevelWarn:
		return nsq.LogLevelWarning
	default:
		return nsq.LogLevelError
	}
}

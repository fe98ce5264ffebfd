package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is a thin wrapper around slog that carries the current action name
// alongside any attached attributes. All output is single-line JSON on stdout.
type Logger struct {
	sl *slog.Logger
}

// New builds a Logger for the given minimum level: DEBUG, INFO, WARN or ERROR.
func New(level string) (Logger, error) {
	var lvl slog.Level
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO", "":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		return Logger{}, fmt.Errorf("unknown log level: %q", level)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	hostname, _ := os.Hostname()
	sl := slog.New(handler).With("hostname", hostname)
	return Logger{sl: sl}, nil
}

// Action tags all subsequent log entries with an action name.
func (l Logger) Action(action string) Logger {
	return Logger{sl: l.sl.With("action", action)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{sl: l.sl.With(args...)}
}

func (l Logger) WithGroup(name string) Logger {
	return Logger{sl: l.sl.WithGroup(name)}
}

func (l Logger) Info(msg string, args ...any) {
	l.sl.Info(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.sl.Warn(msg, args...)
}

func (l Logger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.sl.Error(msg, args...)
}

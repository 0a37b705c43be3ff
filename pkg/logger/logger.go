package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the process logger. Production gets JSON at info level,
// everything else gets text at debug level.
func Init(env string) {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
}

func l() *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// normalize lets call sites pass a bare error or value as the only argument
// instead of a key-value pair.
func normalize(args []any) []any {
	if len(args) == 1 {
		if _, ok := args[0].(slog.Attr); ok {
			return args
		}
		return []any{slog.Any("error", args[0])}
	}
	return args
}

func Debug(msg string, args ...any) {
	l().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	l().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	l().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	l().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	l().Error(msg, normalize(args)...)
	os.Exit(1)
}

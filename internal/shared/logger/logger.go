package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv overrides the environment's default level (debug|info|warn|error)
const LevelEnv = "LOG_LEVEL"

// Setup configures the global slog logger based on environment
func Setup(env string) {
	slog.SetDefault(New(os.Stdout, env, os.Getenv(LevelEnv)))
	slog.Info("Logger 초기화", "env", env, "level", levelFor(env, os.Getenv(LevelEnv)).String())
}

// New builds the logger for env: JSON in production, text elsewhere.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(env, level),
	}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func levelFor(env, override string) slog.Level {
	var level slog.Level
	if override != "" && level.UnmarshalText([]byte(strings.ToUpper(override))) == nil {
		return level
	}

	switch env {
	case "local", "dev", "development":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Package logging routes the log/slog calls made throughout the service onto
// a zap core with production JSON output.
package logging

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.TimeKey = "timestamp"
	config.MessageKey = "message"
	config.LevelKey = "level"
	return config
}

// New builds a production zap logger at the given level ("debug", "info", ...).
func New(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig = encoderConfig()
	return config.Build()
}

// NewSlogHandler wraps a zap core as a slog handler.
func NewSlogHandler(core zapcore.Core) slog.Handler {
	return zapslog.NewHandler(core, zapslog.WithCaller(true))
}

// Setup installs a zap-backed default slog logger. Callers should Sync the
// returned logger before exiting.
func Setup(level string) (*zap.Logger, error) {
	logger, err := New(level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(NewSlogHandler(logger.Core())))
	return logger, nil
}

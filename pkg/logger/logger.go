package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewWithLevel builds a production json logger writing to stderr.
func NewWithLevel(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stdout is reserved for command output.
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

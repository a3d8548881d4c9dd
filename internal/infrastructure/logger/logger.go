// Package logger builds the zap loggers used by the lms commands.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javatronic/lms/internal/infrastructure/config"
)

// New builds a logger writing to w according to cfg.
func New(cfg config.LogConfig, w zapcore.WriteSyncer) (*zap.Logger, error) {
	core, err := NewCore(cfg, w)
	if err != nil {
		return nil, err
	}
	return zap.New(core), nil
}

// NewCore builds the zap core behind New, for callers that tee or wrap it.
func NewCore(cfg config.LogConfig, w zapcore.WriteSyncer) (zapcore.Core, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	var encoder zapcore.Encoder
	if cfg.Mode == "production" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.CallerKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	return zapcore.NewCore(encoder, w, level), nil
}

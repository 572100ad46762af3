// Package logger builds the zap logger shared by the API and the CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerConfig holds the options used to build a logger
type ZapLoggerConfig struct {
	IsDevelopment     bool
	Encoding          string // json or console
	Level             string
	DisableCaller     bool
	DisableStacktrace bool
}

// NewZapLogger builds a zap logger. An unknown level falls back to info.
func NewZapLogger(cfg *ZapLoggerConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
			level.SetLevel(parsed)
		}
	}

	zcfg := zap.NewProductionConfig()
	if cfg.IsDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	zcfg.DisableCaller = cfg.DisableCaller
	zcfg.DisableStacktrace = cfg.DisableStacktrace
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.Encoding {
	case "console", "json":
		zcfg.Encoding = cfg.Encoding
	}

	return zcfg.Build()
}

// New is a shortcut for the common case
func New(level, encoding string, development bool) (*zap.Logger, error) {
	return NewZapLogger(&ZapLoggerConfig{
		IsDevelopment: development,
		Encoding:      encoding,
		Level:         level,
	})
}

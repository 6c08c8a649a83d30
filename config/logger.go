package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Production emits JSON at info level,
// everything else uses the human readable development encoder.
func NewLogger() *zap.Logger {
	var cfg zap.Config
	if IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

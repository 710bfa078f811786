// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment. Production
// logs JSON at info level; every other environment gets a human-readable
// console encoder at debug level. The "test" environment only logs warnings
// so test output stays readable.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		switch env {
		case "production":
			cfg = zap.NewProductionConfig()
		case "test":
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		default:
			cfg = zap.NewDevelopmentConfig()
		}

		base, err := cfg.Build()
		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

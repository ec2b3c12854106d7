package utils

import (
	"log"

	"jenga/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. Services and middleware fetch it through
// GetLogger rather than threading it through constructors.
var Logger *zap.Logger

// InitializeLogger builds the logger from the loaded configuration: JSON
// output in production, colored console output in development, with the level
// taken from LOG_LEVEL in both.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(config.AppConfig.LogLevel))

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// parseLevel maps the LOG_LEVEL setting to a zap level, defaulting to info on
// anything unparseable.
func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// GetLogger returns the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

package log

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(zapcore.InfoLevel)
	if os.Getenv("env") == "local" {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339Nano)

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("fail to build log. err: %s", err)
	}

	logger = zapLogger.With(zap.String("app", "reliefhub-go-service"))
}

func Logger() *zap.Logger {
	return logger
}

// Component returns the shared logger tagged with the emitting component.
func Component(name string) *zap.Logger {
	return logger.With(zap.String("component", name))
}

// Replace swaps the shared logger and returns a func restoring the previous one.
// Tests use it with zaptest/observer to assert on emitted entries.
func Replace(l *zap.Logger) func() {
	prev := logger
	logger = l
	return func() { logger = prev }
}

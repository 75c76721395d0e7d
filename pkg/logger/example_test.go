package logger_test

import (
	"log/slog"

	"github.com/linkalytics/factorlink/pkg/logger"
)

func ExampleNewDefaultLogger() {
	// Create a logger with default settings
	log := logger.NewDefaultLogger(slog.LevelDebug)

	// Log different levels
	log.Debug("This is a debug message") // Cyan in terminal
	log.Info("This is an info message")
	log.Warn("This is a warning message") // Yellow in terminal
	log.Error("This is an error message") // Red in terminal
}

func ExampleNewLogger() {
	// Create a logger with custom configuration
	log := logger.NewDefaultLogger(slog.LevelInfo)

	// Log with attributes
	log.Info("reverse lookup", "field", "phone", "hits", 42)
	log.Warn("cache read failed", "error", "corrupt entry")
	log.Error("search backend unreachable", "error", "timeout", "retry_count", 3)
}

package main

import (
	"log/slog"

	"github.com/linkalytics/factorlink/pkg/logger"
)

func main() {
	// Create a colored logger
	log := logger.NewDefaultLogger(slog.LevelDebug)

	log.Info("============================================")
	log.Info("    Factorlink Colored Logger Demo")
	log.Info("============================================")
	log.Info("")

	log.Debug("Debug message - cyan!")
	log.Info("Info message - standard color")
	log.Warn("Warning message - yellow!")
	log.Error("Error message - red!")

	log.Info("")
	log.Info("Query operations log with attributes:")
	log.Info("reverse lookup", "field", "phone", "value", "555-0100", "hits", 12)
	log.Info("expansion degree complete", "degree", 2, "entities", 156, "duration", "1.8s")
	log.Warn("fallback to all-fields query", "value", "555-0100")

	log.Info("")
	log.Warn("Warnings appear in yellow for attention")
	log.Error("Errors appear in red for immediate visibility")

	log.Info("")
	log.Info("Demo complete!")
}

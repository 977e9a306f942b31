// filepath: internal/logging/logging.go
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init adjusts its level once the config is known.
var Log = NewLogger("info")

// Init sets the level of the shared logger.
func Init(level string) {
	Log.SetLevel(parseLevel(level))
}

// NewLogger creates a JSON logger writing to stdout at the given level.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()

	// Using JSON format for structured logging.
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(level))

	return log
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

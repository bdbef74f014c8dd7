// Package log configures the process-wide logger: charmbracelet/log
// writing to standard error, level controlled by PONDE_LOG_LEVEL or
// the --log-level flag (flag wins), matching the env-then-flag
// precedence SPEC_FULL.md §6 specifies.
package log

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel is the environment variable consulted when --log-level is
// not passed.
const EnvLevel = "PONDE_LOG_LEVEL"

// New builds the process logger. flagLevel is the --log-level flag
// value, empty when unset; jsonFormat selects JSON output instead of
// the default human-readable text (--log-format=json/text).
func New(flagLevel string, jsonFormat bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: true,
	})

	if jsonFormat {
		logger.SetFormatter(log.JSONFormatter)
	}

	logger.SetLevel(resolveLevel(flagLevel))
	return logger
}

func resolveLevel(flagLevel string) log.Level {
	raw := flagLevel
	if raw == "" {
		raw = os.Getenv(EnvLevel)
	}
	if raw == "" {
		return log.InfoLevel
	}

	level, err := log.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

package observability

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// LoggerPrefix is prepended to every log line.
const LoggerPrefix = "todo"

// NewLogger creates a leveled logger writing to w using the level and
// format from cfg.
func NewLogger(w io.Writer, cfg models.LogConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLogLevel(cfg.Level),
		Formatter:       ParseLogFormatter(cfg.Format),
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          LoggerPrefix,
	})
}

// ParseLogLevel parses a string log level to a charmbracelet/log Level.
// Unknown values map to WarnLevel.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseLogFormatter parses a string formatter name to a charmbracelet/log
// Formatter.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

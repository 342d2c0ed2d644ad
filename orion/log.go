package orion

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns a slog logger writing through a charmbracelet handler.
func NewLogger(w io.Writer, level slog.Level, reportCaller bool) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    reportCaller,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "cubes",
	})

	// both packages use the same numeric levels
	handler.SetLevel(log.Level(level))

	return slog.New(handler)
}

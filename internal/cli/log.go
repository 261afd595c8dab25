// Package cli implements the forcetower command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Status
// lines and the live view are styled with lipgloss.
//
// # Commands
//
// The main commands are:
//   - layout: Run the simulation for a graph.json and write a layout.json
//   - render: Draw a layout.json as SVG, DOT, PNG, PDF or JSON
//   - watch: Animate the simulation in the terminal
//   - cache: Manage the layout cache
//
// # Configuration
//
// Force stacks and cooling schedules come from TOML files (--config or
// FORCETOWER_CONFIG). A .env file in the working directory is loaded first.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
// FORCETOWER_LOG_LEVEL sets the default level.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcetower/pkg/errors"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLogLevel maps a level name to a log level. The empty string is info.
func parseLogLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level")
	}
	return level, nil
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// rounded to the millisecond, e.g. "Rendered 3 artifacts (1.234s)".
func (p *progress) done(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

// Package cli implements the tilegrid command-line interface.
//
// The commands drive the layout manager against the reference host in
// pkg/host: layout prints one pass, scroll traces a scroll gesture, view
// hosts the manager in a bubbletea terminal UI and serve runs the HTTP
// session service. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one record per layout pass. Loggers are passed through context.Context.
//
// # Configuration
//
// --config names a TOML file (see pkg/config). Flags given on the command
// line override file values.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled records with a short wall-clock timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
}

// progress reports how long a command step took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Scrolled 12 steps, 250 units (1ms)".
func (p *progress) done(msg string) {
	p.logger.Info(msg, "took", time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default when no logger is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

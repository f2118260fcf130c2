// Package cli implements the chunkgraph command-line interface.
//
// This package provides commands for describing the module graph of a
// project, assigning compilation units to modules, answering dependency
// queries, drawing the graph and serving the same operations over HTTP. The
// CLI is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - describe: Print the JSON description of every module
//   - assign: Decide which module owns each input
//   - query: Covering, common and transitive dependency queries
//   - dot: Draw the graph as DOT, SVG or PNG
//   - browse: Interactive module browser
//   - serve: HTTP API
//
// # Configuration
//
// Dependency options come from the project manifest's [options] section.
// Flags such as --prune or --entry override it only when given explicitly.
//
// # Logging
//
// The root command's --verbose (-v) flag switches the shared logger to
// debug level, which also surfaces the pipeline's per-stage timings. The
// logger reaches commands through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: timestamps as "15:04:05.00", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command and logs its summary line.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time appended, e.g.
// "Assigned 42 inputs (12ms) modules=4 dropped=1".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, elapsed), keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this before any
// subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that never passed through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

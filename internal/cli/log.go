// Package cli implements the clevacompass command-line interface.
//
// The commands wrap the compose, render, store and fetch packages:
//   - generate: fill the compass template and write the .tex document
//   - render: export the compass as svg, png, pdf or tex
//   - entry: add, update, delete, list, import and export entries
//   - colors: list the palette and register extra colours
//   - fetch: download method entry documents from GitHub
//   - watch: regenerate the document whenever its inputs change
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library calls log under the same
// settings.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamped with "15:04:05.00" times.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one compass operation (a generate in watch mode, a
// render) and logs its outcome with the elapsed time attached.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger, op string) *progress {
	return &progress{logger: l.With("op", op), start: time.Now()}
}

// done logs msg with keyvals and a "took" field rounded to milliseconds.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the commands and libraries below.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

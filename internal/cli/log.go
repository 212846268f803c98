package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with short wall-clock stamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
}

// progress times one command step and logs it once finished, e.g.
// "Rendered home.svg (412ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}

type loggerCtxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	l, ok := ctx.Value(loggerCtxKey{}).(*log.Logger)
	if !ok {
		return log.Default()
	}
	return l
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports board and store events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnCommit(_ context.Context, board, widgetID string, displaced int, d time.Duration) {
	h.logger.Debug("commit", "board", board, "widget", widgetID, "displaced", displaced, "duration", d)
}

func (h *logHooks) OnReject(_ context.Context, board, widgetID, reason string) {
	h.logger.Debug("reject", "board", board, "widget", widgetID, "reason", reason)
}

func (h *logHooks) OnCompact(_ context.Context, board string, moved int, d time.Duration) {
	h.logger.Debug("compact", "board", board, "moved", moved, "duration", d)
}

func (h *logHooks) OnLoad(_ context.Context, backend, board string, found bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("store load failed", "backend", backend, "board", board, "err", err)
		return
	}
	h.logger.Debug("store load", "backend", backend, "board", board, "found", found, "duration", d)
}

func (h *logHooks) OnSave(_ context.Context, backend, board string, widgets int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("store save failed", "backend", backend, "board", board, "err", err)
		return
	}
	h.logger.Debug("store save", "backend", backend, "board", board, "widgets", widgets, "duration", d)
}

func (h *logHooks) OnDelete(_ context.Context, backend, board string, err error) {
	h.logger.Debug("store delete", "backend", backend, "board", board, "err", err)
}

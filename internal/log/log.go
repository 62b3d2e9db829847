// Package log wires log/slog with attributes carried inside a
// context.Context, so scan-wide details like the run id or the source being
// scanned appear on every record logged underneath.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type attrsKey struct{}

// ContextAttrs returns a context carrying attrs on top of those already
// present. A logger built with NewContextHandler adds them to every record
// logged with that context.
func ContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	existing, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// ContextHandler decorates a slog.Handler with the attributes stored via
// ContextAttrs.
type ContextHandler struct {
	base slog.Handler
}

func NewContextHandler(base slog.Handler) ContextHandler {
	return ContextHandler{base: base}
}

func (h ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		rec = rec.Clone()
		rec.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, rec)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{base: h.base.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{base: h.base.WithGroup(name)}
}

// New returns a JSON logger to stderr, debug level when verbose.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New writing to w. io.Discard silences logging entirely.
func NewWithWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewContextHandler(base))
}

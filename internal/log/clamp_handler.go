package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxValueLen is the longest string attribute kept unchanged.
const DefaultMaxValueLen = 120

// ClampHandler wraps an slog.Handler and truncates long string attribute values.
// Truncated values keep their prefix and gain a suffix with the original length.
type ClampHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewClampHandler creates a ClampHandler around handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive maxLen
// selects DefaultMaxValueLen.
func NewClampHandler(handler slog.Handler, maxLen int) *ClampHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &ClampHandler{handler: handler, maxLen: maxLen}
}

// Enabled delegates to the underlying handler.
func (h *ClampHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clamps the record's attributes and passes it on.
func (h *ClampHandler) Handle(ctx context.Context, r slog.Record) error {
	clamped := slog.NewRecord(r.Time, r.Level, h.clampString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clamped.AddAttrs(h.clampAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clamped)
}

// WithAttrs returns a new handler with the given (clamped) attributes added.
func (h *ClampHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clamped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clamped[i] = h.clampAttr(a)
	}
	return &ClampHandler{handler: h.handler.WithAttrs(clamped), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *ClampHandler) WithGroup(name string) slog.Handler {
	return &ClampHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// clampAttr clamps a single attribute, recursing into groups.
func (h *ClampHandler) clampAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		clamped := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			clamped[i] = h.clampAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clamped...)}
	case slog.KindString:
		return slog.String(a.Key, h.clampString(a.Value.String()))
	default:
		return a
	}
}

func (h *ClampHandler) clampString(s string) string {
	if len(s) <= h.maxLen {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:h.maxLen], len(s))
}

// NewLogger creates a text logger writing to w.
// verbose selects Debug level; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClampHandler(slog.NewTextHandler(w, handlerOptions(verbose)), DefaultMaxValueLen))
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClampHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), DefaultMaxValueLen))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

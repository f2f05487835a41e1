package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SlogHandler adapts a Logger to slog.Handler so every component logs
// through the same rolling app.log file instead of each opening its own
// handle.
type SlogHandler struct {
	logger *Logger
	attrs  []slog.Attr
	group  string
}

// NewSlogHandler wraps logger for use with slog.New.
func NewSlogHandler(logger *Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

func (h *SlogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&sb, " %s=%v", key, a.Value)
		return true
	})
	h.logger.Log(r.Level.String(), sb.String())
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SlogHandler{logger: h.logger, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...), group: h.group}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	return &SlogHandler{logger: h.logger, attrs: h.attrs, group: name}
}

package logger

import (
	"context"
	"log/slog"
)

// contextHandler injects correlation metadata stored in context into every record.
type contextHandler struct {
	inner slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if rid := RIDFrom(ctx); rid != "" && !hasAttr(r, "rid") {
			r.AddAttrs(slog.String("rid", rid))
		}
		if id := UpdateIDFrom(ctx); id != 0 && !hasAttr(r, "update_id") {
			r.AddAttrs(slog.Int("update_id", id))
		}
		if id := UserIDFrom(ctx); id != 0 && !hasAttr(r, "user_id") {
			r.AddAttrs(slog.Int64("user_id", id))
		}
		if id := ChatIDFrom(ctx); id != 0 && !hasAttr(r, "chat_id") {
			r.AddAttrs(slog.Int64("chat_id", id))
		}
		if handler := HandlerFrom(ctx); handler != "" && !hasAttr(r, "handler") {
			r.AddAttrs(slog.String("handler", handler))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}

func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}

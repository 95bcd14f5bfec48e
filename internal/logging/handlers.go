package logging

import (
	"context"
	"errors"
	"log/slog"
)

// ContextProvider returns attributes sampled at the moment a record is
// handled, such as the size of the published draw buffer.
type ContextProvider func() []slog.Attr

// Fanout hands every record to each of its sinks. A failing sink does not
// stop the others; the failures are joined into the returned error.
type Fanout []slog.Handler

// NewFanout drops nil sinks so optional outputs can be passed unconditionally.
func NewFanout(sinks ...slog.Handler) Fanout {
	f := make(Fanout, 0, len(sinks))
	for _, h := range sinks {
		if h != nil {
			f = append(f, h)
		}
	}
	return f
}

func (f Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f Fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f Fanout) each(fn func(slog.Handler) slog.Handler) Fanout {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// withContext appends the provider's attributes to every record.
type withContext struct {
	slog.Handler
	provider ContextProvider
}

func (h withContext) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.provider()...)
	return h.Handler.Handle(ctx, r)
}

func (h withContext) WithAttrs(attrs []slog.Attr) slog.Handler {
	return withContext{Handler: h.Handler.WithAttrs(attrs), provider: h.provider}
}

func (h withContext) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return withContext{Handler: h.Handler.WithGroup(name), provider: h.provider}
}

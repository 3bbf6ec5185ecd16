package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// MaskValue replaces redacted strings.
const MaskValue = "***"

// Format selects the log line encoding.
type Format string

const (
	// FormatText writes key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Options configures NewLogger.
type Options struct {
	// Verbose lowers the level from Warn to Debug.
	Verbose bool

	// Format is FormatText when empty.
	Format Format

	// Redact lists strings masked in messages and string attributes.
	// Empty entries are ignored.
	Redact []string
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch opts.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		h = slog.NewTextHandler(w, handlerOpts)
	}

	if secrets := nonEmpty(opts.Redact); len(secrets) > 0 {
		h = NewRedactHandler(h, secrets...)
	}
	return slog.New(h)
}

// RedactHandler masks fixed strings before records reach the wrapped handler.
//
// Masking applies to the message, to string and error attribute values and
// to attributes nested in groups or preset with WithAttrs. Keys are left
// untouched, and numeric or time values pass through as they are.
//
// Design decision: the handler matches literal strings rather than attribute
// keys. The host name shows up inside free text such as `uname -a` output
// and error messages, so a key-based filter would miss most occurrences.
type RedactHandler struct {
	handler  slog.Handler
	replacer *strings.Replacer
}

// NewRedactHandler wraps handler. If handler is nil the default handler is used.
func NewRedactHandler(handler slog.Handler, secrets ...string) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	pairs := make([]string, 0, len(secrets)*2)
	for _, s := range nonEmpty(secrets) {
		pairs = append(pairs, s, MaskValue)
	}
	return &RedactHandler{handler: handler, replacer: strings.NewReplacer(pairs...)}
}

// Enabled delegates to the wrapped handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the message and attributes, then forwards the record.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, h.replacer.Replace(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler whose preset attributes are masked.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(masked), replacer: h.replacer}
}

// WithGroup returns a handler with the group opened.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), replacer: h.replacer}
}

func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = h.redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	case slog.KindString:
		return slog.String(a.Key, h.replacer.Replace(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.replacer.Replace(err.Error()))
		}
	}
	return a
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/plink/internal/ui/output"
	"go.trai.ch/plink/internal/ui/style"
)

// ToolKey is the attribute naming the external tool an output line came from.
const ToolKey = "tool"

// statusLine matches progress lines such as "   Compiling header": a right-aligned
// capitalised verb followed by its subject.
var statusLine = regexp.MustCompile(`^( +)([A-Z][a-z]+)( .*)$`)

// PrettyHandler is a slog.Handler that writes one coloured line per record.
// Lines printed by external tools are prefixed with the tool name so they stand
// apart from plink's own progress lines.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var tool string
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	collect := func(attr slog.Attr) bool {
		if attr.Key == ToolKey {
			tool = attr.Value.String()
			return true
		}
		if !attr.Equal(slog.Attr{}) {
			parts = append(parts, attr.Key+"="+attr.Value.Resolve().String())
		}
		return true
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(collect)

	var line string
	switch {
	case r.Level >= slog.LevelError:
		line = h.colored(style.Cross+" "+r.Message, style.Red)
	case r.Level >= slog.LevelWarn:
		line = h.colored(style.Warning+" "+r.Message, style.Yellow)
	case tool != "":
		line = h.colored("  "+tool+" "+style.Bar, style.Iris) + " " + r.Message
	default:
		line = h.status(r.Message)
	}

	if len(parts) > 0 {
		line += " " + h.colored(strings.Join(parts, " "), style.Slate)
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// status highlights the verb of a progress line and leaves other messages muted.
func (h *PrettyHandler) status(msg string) string {
	m := statusLine.FindStringSubmatch(msg)
	if m == nil {
		return h.colored(msg, style.Slate)
	}
	verb := h.out.String(m[2]).Foreground(termenv.RGBColor(string(style.Green))).Bold()
	return m[1] + verb.String() + m[3]
}

func (h *PrettyHandler) colored(s string, c lipgloss.Color) string {
	return h.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup returns h unchanged. Plink logs flat records only.
func (h *PrettyHandler) WithGroup(string) slog.Handler {
	return h
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminals. Each record becomes one line:
// a level icon, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler

	// preformatted holds the attributes added through WithAttrs, already rendered.
	preformatted []string
	group        string
}

// NewPrettyHandler creates a new PrettyHandler writing to w. A nil w selects os.Stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	var line strings.Builder
	if icon != "" {
		line.WriteString(icon)
		line.WriteByte(' ')
	}
	line.WriteString(r.Message)

	for _, attr := range h.preformatted {
		line.WriteByte(' ')
		line.WriteString(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteByte(' ')
		line.WriteString(formatAttr(h.group, attr))
		return true
	})

	styled := h.out.String(line.String()).Foreground(h.out.Color(string(color)))
	if r.Level < slog.LevelInfo {
		styled = styled.Faint()
	}
	_, err := io.WriteString(h.out, styled.String()+"\n")
	return err
}

// WithAttrs returns a Handler that prints attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.preformatted = make([]string, 0, len(h.preformatted)+len(attrs))
	clone.preformatted = append(clone.preformatted, h.preformatted...)
	for _, attr := range attrs {
		clone.preformatted = append(clone.preformatted, formatAttr(h.group, attr))
	}
	return &clone
}

// WithGroup returns a Handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group == "" {
		clone.group = name
	} else {
		clone.group = h.group + "." + name
	}
	return &clone
}

func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	default:
		return "", style.Slate
	}
}

func formatAttr(group string, attr slog.Attr) string {
	if group == "" {
		return attr.Key + "=" + attr.Value.String()
	}
	return group + "." + attr.Key + "=" + attr.Value.String()
}

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// TimeFormat is the timestamp layout used by TerminalHandler.
const TimeFormat = "2006-01-02 15:04:05"

// TerminalOptions configures a TerminalHandler.
type TerminalOptions struct {
	// Level is the minimum level to print. Defaults to INFO.
	Level slog.Leveler
	// NoColor disables ANSI colors regardless of the output.
	NoColor bool
	// ForceColor enables ANSI colors even when the output is not a terminal.
	ForceColor bool
}

// TerminalHandler is a slog.Handler that prints one timestamped,
// color-coded status line per record:
//
//	[2006-01-02 15:04:05] INFO  message key=value
//
// Records carrying the Success attribute are printed with a green OK label.
// Colors are only emitted when the output is a terminal, unless forced.
type TerminalHandler struct {
	mu      *sync.Mutex
	w       io.Writer
	level   slog.Leveler
	palette palette
	prefix  string
	groups  []string
}

type palette struct {
	debug   *color.Color
	info    *color.Color
	warn    *color.Color
	err     *color.Color
	success *color.Color
	stamp   *color.Color
	key     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		debug:   color.New(color.Faint),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		stamp:   color.New(color.FgHiBlack),
		key:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.debug, p.info, p.warn, p.err, p.success, p.stamp, p.key} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// NewTerminalHandler creates a TerminalHandler writing to w.
// A nil opts is equivalent to &TerminalOptions{}.
func NewTerminalHandler(w io.Writer, opts *TerminalOptions) *TerminalHandler {
	if opts == nil {
		opts = &TerminalOptions{}
	}
	if w == nil {
		w = os.Stdout
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &TerminalHandler{
		mu:      &sync.Mutex{},
		w:       w,
		level:   level,
		palette: newPalette(colorEnabled(w, opts)),
	}
}

func colorEnabled(w io.Writer, opts *TerminalOptions) bool {
	if opts.ForceColor {
		return true
	}
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var attrs strings.Builder
	success := false
	r.Attrs(func(a slog.Attr) bool {
		if isSuccess(a) {
			success = true
			return true
		}
		h.appendAttr(&attrs, h.groups, a)
		return true
	})

	label, c := h.label(r.Level)
	msg := r.Message
	if success && r.Level < slog.LevelWarn {
		label, c = "OK", h.palette.success
		msg = c.Sprint(msg)
	}

	var b strings.Builder
	b.WriteString(h.palette.stamp.Sprint("[" + ts.Format(TimeFormat) + "]"))
	b.WriteByte(' ')
	b.WriteString(c.Sprint(fmt.Sprintf("%-5s", label)))
	b.WriteByte(' ')
	b.WriteString(msg)
	b.WriteString(h.prefix)
	b.WriteString(attrs.String())
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	for _, a := range attrs {
		h.appendAttr(&b, h.groups, a)
	}
	next := h.clone()
	next.prefix += b.String()
	return next
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(slices.Clip(h.groups), name)
	return next
}

func (h *TerminalHandler) clone() *TerminalHandler {
	c := *h
	return &c
}

func (h *TerminalHandler) label(level slog.Level) (string, *color.Color) {
	switch {
	case level >= slog.LevelError:
		return "ERROR", h.palette.err
	case level >= slog.LevelWarn:
		return "WARN", h.palette.warn
	case level >= slog.LevelInfo:
		return "INFO", h.palette.info
	default:
		return "DEBUG", h.palette.debug
	}
}

func (h *TerminalHandler) appendAttr(b *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		next := groups
		if a.Key != "" {
			next = append(slices.Clip(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, next, ga)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(h.palette.key.Sprint(key + "="))
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(TimeFormat)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = v.String()
		}
	default:
		s = v.String()
	}
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

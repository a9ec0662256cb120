package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/isseis/go-printable-binary/internal/color"
)

// Static errors for InteractiveHandler validation
var (
	ErrInteractiveHandlerWriterRequired = errors.New("InteractiveHandler: Writer is required")
)

// levelColors maps slog levels to the color used for the level tag.
var levelColors = map[slog.Level]color.Color{
	slog.LevelDebug: color.Gray,
	slog.LevelInfo:  color.Green,
	slog.LevelWarn:  color.Yellow,
	slog.LevelError: color.Red,
}

// InteractiveHandler is a slog handler for humans watching stderr: a colored
// level tag, the message, then dimmed key=value attributes. It is not meant
// for machine consumption; pipelines get the plain text handler instead.
type InteractiveHandler struct {
	writer io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Level

	// Writer is the output destination (typically os.Stderr)
	Writer io.Writer
}

// NewInteractiveHandler creates a new InteractiveHandler with the given
// options. Returns an error if the writer is missing.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	return &InteractiveHandler{
		writer: opts.Writer,
		level:  opts.Level,
		mu:     &sync.Mutex{},
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes one record.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	tag := r.Level.String()
	if c, ok := levelColors[r.Level]; ok {
		tag = c(tag)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", tag, r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	for _, attr := range h.attrs {
		fmt.Fprintf(&b, " %s", color.Gray(fmt.Sprintf("%s%s=%v", prefix, attr.Key, attr.Value)))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(&b, " %s", color.Gray(fmt.Sprintf("%s%s=%v", prefix, attr.Key, attr.Value)))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a handler that prefixes attribute keys with the group
// name.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

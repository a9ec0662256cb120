package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupOptions controls logger initialization.
type SetupOptions struct {
	// Level is the textual log level ("debug", "info", "warn", "error").
	Level string

	// Interactive selects the colored human-oriented handler instead of the
	// plain text handler.
	Interactive bool

	// RunID is attached to every record.
	RunID string
}

// Setup initializes the process-wide default logger on stderr. An
// unparsable level falls back to info with a warning once the logger is up.
func Setup(opts SetupOptions) error {
	var level slog.Level
	invalidLevel := false
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
		invalidLevel = true
	}

	var handler slog.Handler
	if opts.Interactive {
		h, err := NewInteractiveHandler(InteractiveHandlerOptions{
			Level:  level,
			Writer: os.Stderr,
		})
		if err != nil {
			return fmt.Errorf("failed to create interactive handler: %w", err)
		}
		handler = h
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	handler = handler.WithAttrs([]slog.Attr{slog.String("run_id", opts.RunID)})
	slog.SetDefault(slog.New(handler))

	if invalidLevel {
		slog.Warn("invalid log level provided, defaulting to info", "provided", opts.Level)
	}
	return nil
}

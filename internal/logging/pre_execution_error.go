// Package logging sets up the process-wide slog logger and provides the
// typed error used for failures that happen before any payload I/O.
//
// Payload bytes go to stdout (and, in passthrough mode, encoded text to
// stderr), so human diagnostics must never be written to stdout. Everything
// in this package writes to stderr only.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ErrorType classifies failures that occur before encoding or decoding
// starts. Data-path conditions (unrecognized decode input, dropped
// disassembly lines) are deliberately not represented here: those degrade
// the output, they do not abort the run.
type ErrorType string

const (
	// ErrorTypeInvalidUsage represents conflicting or malformed command
	// line arguments.
	ErrorTypeInvalidUsage ErrorType = "invalid_usage"
	// ErrorTypeConfigParsing represents configuration file failures.
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeTableBuild represents a symbol table that failed its
	// completeness or injectivity invariants.
	ErrorTypeTableBuild ErrorType = "symbol_table_build_failed"
	// ErrorTypeFileAccess represents input file access failures.
	ErrorTypeFileAccess ErrorType = "file_access_failed"
	// ErrorTypeToolMissing represents a required external tool that is not
	// installed.
	ErrorTypeToolMissing ErrorType = "external_tool_missing"
	// ErrorTypeLogSetup represents logger initialization failures.
	ErrorTypeLogSetup ErrorType = "log_setup_failed"
)

// PreExecutionError is an error raised before any payload output was
// produced. The CLI prints it to stderr and exits non-zero.
type PreExecutionError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *PreExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s, run_id: %s)", e.Type, e.Message, e.Err, e.Component, e.RunID)
	}
	return fmt.Sprintf("%s: %s (component: %s, run_id: %s)", e.Type, e.Message, e.Component, e.RunID)
}

// Is reports whether target is a PreExecutionError.
func (e *PreExecutionError) Is(target error) bool {
	_, ok := target.(*PreExecutionError)
	return ok
}

// Unwrap returns the wrapped cause.
func (e *PreExecutionError) Unwrap() error {
	return e.Err
}

// HandlePreExecutionError reports a pre-execution failure on stderr and
// through the default logger. The stderr block is built first and written in
// one call so concurrent log output cannot interleave with it.
func HandlePreExecutionError(err *PreExecutionError) {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err.Type)
	if err.Component != "" {
		fmt.Fprintf(&b, "  Component: %s\n", err.Component)
	}
	fmt.Fprintf(&b, "  Details: %s\n", err.Message)
	if err.Err != nil {
		fmt.Fprintf(&b, "  Cause: %v\n", err.Err)
	}
	if err.RunID != "" {
		fmt.Fprintf(&b, "  Run ID: %s\n", err.RunID)
	}
	fmt.Fprint(os.Stderr, b.String())

	slog.Error("pre-execution error",
		"error_type", string(err.Type),
		"error_message", err.Message,
		"component", err.Component,
		"run_id", err.RunID,
	)
}

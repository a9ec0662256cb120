// Package terminal provides helpers for detecting terminal capabilities and
// deciding whether the current process is talking to a human or to a
// pipeline. The encoder writes payload bytes to stdout, so all interactive
// decisions here are about stdin (waiting on a TTY with no input file makes
// no sense) and stderr (where diagnostics and colors go).
package terminal

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables. A CI environment is
// never treated as interactive even when a pseudo-terminal is attached.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// DetectorOptions contains options for overriding detection results.
type DetectorOptions struct {
	ForceColor   bool // Emit color regardless of environment
	DisableColor bool // Never emit color; wins over ForceColor
}

// Detector reports terminal capabilities of the current process.
type Detector interface {
	// IsInputTerminal reports whether stdin is attached to a terminal.
	IsInputTerminal() bool

	// IsCIEnvironment reports whether the process runs under a CI system.
	IsCIEnvironment() bool

	// UseColor reports whether diagnostics on stderr should be colored.
	UseColor() bool
}

// DefaultDetector implements Detector using golang.org/x/term and the
// process environment.
type DefaultDetector struct {
	options DetectorOptions
}

// NewDetector creates a new detector with the given options.
func NewDetector(options DetectorOptions) *DefaultDetector {
	return &DefaultDetector{options: options}
}

// IsInputTerminal reports whether stdin is attached to a terminal.
func (d *DefaultDetector) IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsCIEnvironment checks the common CI environment variables.
func (d *DefaultDetector) IsCIEnvironment() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// UseColor reports whether stderr output should be colored. Explicit options
// win, then the NO_COLOR convention, then CI detection, then whether stderr
// is actually a terminal.
func (d *DefaultDetector) UseColor() bool {
	if d.options.DisableColor {
		return false
	}
	if d.options.ForceColor {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if d.IsCIEnvironment() {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

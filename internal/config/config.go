// Package config loads optional tool defaults from a TOML file. Command line
// flags always override configured values; the configuration only moves the
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/isseis/go-printable-binary/internal/codec"
	"github.com/isseis/go-printable-binary/internal/disasm"
)

// Error definitions for the config package.
var (
	// ErrInvalidConfig is returned when a configuration file parses but
	// fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FormatConfig sets the default output grouping.
type FormatConfig struct {
	GroupSize     int `toml:"group_size"`
	GroupsPerLine int `toml:"groups_per_line"`
}

// AsmConfig sets the default disassembly architecture.
type AsmConfig struct {
	Arch string `toml:"arch"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Config is the full configuration file schema.
type Config struct {
	Format FormatConfig `toml:"format"`
	Asm    AsmConfig    `toml:"asm"`
	Log    LogConfig    `toml:"log"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			GroupSize:     codec.DefaultFormatSpec.GroupSize,
			GroupsPerLine: codec.DefaultFormatSpec.GroupsPerLine,
		},
		Asm: AsmConfig{Arch: string(disasm.DefaultArch)},
		Log: LogConfig{Level: "info"},
	}
}

// FormatSpec returns the configured grouping as a codec.FormatSpec.
func (c *Config) FormatSpec() codec.FormatSpec {
	return codec.FormatSpec{GroupSize: c.Format.GroupSize, GroupsPerLine: c.Format.GroupsPerLine}
}

// Loader loads and validates configuration files.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the named TOML file over the built-in defaults. Unknown keys
// are rejected so a typo cannot silently leave a default in place.
func (l *Loader) Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the semantic constraints the TOML schema cannot express.
func (c *Config) Validate() error {
	spec := c.FormatSpec()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := disasm.ParseArch(c.Asm.Arch); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

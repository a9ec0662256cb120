package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-printable-binary/internal/codec"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, codec.DefaultFormatSpec, cfg.FormatSpec())
	assert.Equal(t, "x64", cfg.Asm.Arch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "full config",
			content: `
[format]
group_size = 4
groups_per_line = 16

[asm]
arch = "arm64"

[log]
level = "debug"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, codec.FormatSpec{GroupSize: 4, GroupsPerLine: 16}, cfg.FormatSpec())
				assert.Equal(t, "arm64", cfg.Asm.Arch)
				assert.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name: "partial config keeps defaults",
			content: `
[format]
group_size = 2
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Format.GroupSize)
				assert.Equal(t, 10, cfg.Format.GroupsPerLine)
				assert.Equal(t, "x64", cfg.Asm.Arch)
			},
		},
		{
			name:    "unknown key rejected",
			content: "[format]\ngroupsize = 4\n",
			wantErr: true,
		},
		{
			name:    "zero group size rejected",
			content: "[format]\ngroup_size = 0\n",
			wantErr: true,
		},
		{
			name:    "unknown arch rejected",
			content: "[asm]\narch = \"mips\"\n",
			wantErr: true,
		},
		{
			name:    "unknown log level rejected",
			content: "[log]\nlevel = \"loud\"\n",
			wantErr: true,
		},
		{
			name:    "malformed TOML rejected",
			content: "[format\n",
			wantErr: true,
		},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loader.Load(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

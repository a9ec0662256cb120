package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, name := range ciEnvVars {
		t.Setenv(name, "")
	}
}

func TestIsCIEnvironment(t *testing.T) {
	clearCIEnv(t)

	d := NewDetector(DetectorOptions{})
	assert.False(t, d.IsCIEnvironment())

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, d.IsCIEnvironment())
}

func TestUseColor_Overrides(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name    string
		options DetectorOptions
		env     map[string]string
		want    bool
	}{
		{
			name:    "force color wins over CI",
			options: DetectorOptions{ForceColor: true},
			env:     map[string]string{"CI": "1"},
			want:    true,
		},
		{
			name:    "disable wins over force",
			options: DetectorOptions{ForceColor: true, DisableColor: true},
			want:    false,
		},
		{
			name:    "NO_COLOR convention respected",
			options: DetectorOptions{},
			env:     map[string]string{"NO_COLOR": "1"},
			want:    false,
		},
		{
			name:    "CI disables color",
			options: DetectorOptions{},
			env:     map[string]string{"CI": "1"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			d := NewDetector(tt.options)
			assert.Equal(t, tt.want, d.UseColor())
		})
	}
}

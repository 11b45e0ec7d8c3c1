package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		want    types.Config
		wantErr error
	}{
		{
			name: "missing file uses defaults",
			want: types.DefaultConfig(),
		},
		{
			name: "file values override defaults",
			yaml: "log_level: debug\ntable_style: rounded\nseed: false\n",
			want: types.Config{LogLevel: "debug", LogFormat: "text", TableStyle: "rounded", Seed: false, Journal: true},
		},
		{
			name: "env overrides file",
			yaml: "log_format: text\n",
			env:  map[string]string{"TRAINYARD_LOG_FORMAT": "json", "TRAINYARD_JOURNAL": "false"},
			want: types.Config{LogLevel: "info", LogFormat: "json", TableStyle: "light", Seed: true, Journal: false},
		},
		{
			name:    "unknown table style",
			yaml:    "table_style: neon\n",
			wantErr: types.ErrConfigInvalid,
		},
		{
			name:    "unknown log level",
			yaml:    "log_level: loud\n",
			wantErr: types.ErrConfigInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				writeConfig(t, dir, tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := loadConfig(dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: [unterminated\n")

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

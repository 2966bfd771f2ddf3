package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  *Default(),
			wantErr: false,
		},
		{
			name: "valid with output format",
			config: Config{
				ContentDir:   "content",
				ShortcodeDir: "shortcodes",
				OutputDir:    "out",
				OutputFormat: "json",
			},
			wantErr: false,
		},
		{
			name: "missing content dir",
			config: Config{
				ShortcodeDir: "shortcodes",
				OutputDir:    "out",
			},
			wantErr: true,
			errMsg:  "content_dir is required",
		},
		{
			name: "missing shortcode dir",
			config: Config{
				ContentDir: "content",
				OutputDir:  "out",
			},
			wantErr: true,
			errMsg:  "shortcode_dir is required",
		},
		{
			name: "missing output dir",
			config: Config{
				ContentDir:   "content",
				ShortcodeDir: "shortcodes",
			},
			wantErr: true,
			errMsg:  "output_dir is required",
		},
		{
			name: "bad output format",
			config: Config{
				ContentDir:   "content",
				ShortcodeDir: "shortcodes",
				OutputDir:    "out",
				OutputFormat: "xml",
			},
			wantErr: true,
			errMsg:  "output_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yml")

	cfg := &Config{
		ContentDir:   "content",
		ShortcodeDir: "templates/shortcodes",
		OutputDir:    "public",
		OutputFormat: "plain",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("SGN_CONTENT_DIR", "posts")
	t.Setenv("SGN_OUTPUT_FORMAT", "json")

	cfg := Default()
	cfg.LoadFromEnv()

	assert.Equal(t, "posts", cfg.ContentDir)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "templates/shortcodes", cfg.ShortcodeDir)
}

func TestConfig_LoadWithEnvMissingFile(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yml")
	require.NoError(t, os.WriteFile(path, []byte("content_dir: [oops"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

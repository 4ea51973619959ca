package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/layout"
)

// setTestHome points HOME and the XDG caches at a temp directory so
// loads never pick up a real ~/.config/skel/config.yaml.
func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	xdg.Reload()
	return home
}

func TestInit(t *testing.T) {
	setTestHome(t)
	Init()

	assert.Equal(t, CurrentVersion, viper.GetInt("version"))
	assert.Equal(t, "~", viper.GetString("base_dir"))
	assert.Equal(t, layout.DefaultLayout, viper.GetStringSlice("layout"))
	assert.Equal(t, "0600", viper.GetString("mode"))
	assert.True(t, viper.GetBool("backup.enabled"))
	assert.Equal(t, backup.DefaultRetention, viper.GetInt("backup.keep"))
}

func TestLoad_NoConfigFile(t *testing.T) {
	setTestHome(t)
	Init()

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Defaults apply when no file exists anywhere on the search path.
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "~", cfg.BaseDir)
	assert.Equal(t, layout.DefaultLayout, cfg.Layout)
	assert.True(t, cfg.Backup.Enabled)
}

func TestLoad_WithConfigFile(t *testing.T) {
	setTestHome(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `version: 1
base_dir: "~"
layout:
  - .config
  - bin
paths:
  config_dir: ~/.config/MyApp
  Config_File: ~/.config/MyApp/config.yaml
files:
  ~/.config/MyApp/config.yaml: |
    theme: dark
mode: "0644"
backup:
  enabled: false
  keep: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	Init()
	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, []string{".config", "bin"}, cfg.Layout)
	assert.Equal(t, "0644", cfg.Mode)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, 3, cfg.Backup.Keep)

	// Map keys keep their case even though Viper folds keys.
	assert.Equal(t, "~/.config/MyApp/config.yaml", cfg.Paths["Config_File"])
	assert.Equal(t, "~/.config/MyApp", cfg.Paths["config_dir"])
	assert.Contains(t, cfg.Files, "~/.config/MyApp/config.yaml")
	assert.Equal(t, "theme: dark\n", cfg.Files["~/.config/MyApp/config.yaml"])
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	setTestHome(t)
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unsupported version",
			content: "version: 2\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "bad mode string",
			content: "mode: \"rw-r--r--\"\n",
			wantErr: ErrInvalidMode,
		},
		{
			name:    "absolute layout entry",
			content: "layout:\n  - /opt/stage\n",
			wantErr: ErrAbsoluteLayoutEntry,
		},
		{
			name:    "negative retention",
			content: "backup:\n  keep: -1\n",
			wantErr: ErrNegativeRetention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setTestHome(t)
			dir := t.TempDir()
			configPath := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0o600))

			Init()
			_, err := Load(configPath)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	setTestHome(t)

	dir := t.TempDir()
	fileA := filepath.Join(dir, "config_a.yaml")
	require.NoError(t, os.WriteFile(fileA, []byte("base_dir: /one\n"), 0o600))

	Init()
	cfg, err := Load(fileA)
	require.NoError(t, err)
	require.Equal(t, "/one", cfg.BaseDir)

	// A fresh Init must forget the explicit file from the last Load.
	Init()
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "~", cfg.BaseDir)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "~", cfg.BaseDir)
	assert.Equal(t, layout.DefaultLayout, cfg.Layout)
	assert.Equal(t, "0600", cfg.Mode)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, backup.DefaultRetention, cfg.Backup.Keep)
	assert.Empty(t, Validate(cfg))

	// The layout slice is a copy, not the package variable.
	cfg.Layout[0] = "changed"
	assert.Equal(t, ".config", layout.DefaultLayout[0])
}

func TestSave_RoundTrip(t *testing.T) {
	setTestHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	res, err := Save(Default(), path)
	require.NoError(t, err)
	assert.True(t, res.Created)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	Init()
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFileMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    os.FileMode
		wantErr bool
	}{
		{mode: "", want: 0o600},
		{mode: "0600", want: 0o600},
		{mode: "644", want: 0o644},
		{mode: "0755", want: 0o755},
		{mode: "abc", wantErr: true},
		{mode: "0x600", wantErr: true},
		{mode: "7777", wantErr: true},
	}

	for _, tt := range tests {
		cfg := &Config{Mode: tt.mode}
		got, err := cfg.FileMode()
		if tt.wantErr {
			require.Error(t, err, "mode %q", tt.mode)
			assert.ErrorIs(t, err, ErrInvalidMode)
			continue
		}
		require.NoError(t, err, "mode %q", tt.mode)
		assert.Equal(t, tt.want, got, "mode %q", tt.mode)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	setTestHome(t)
	t.Setenv("SKEL_BASE_DIR", "/staged/home")

	Init()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/staged/home", cfg.BaseDir)
}

func TestSave_BacksUpExisting(t *testing.T) {
	setTestHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Save(Default(), path)
	require.NoError(t, err)

	changed := Default()
	changed.BaseDir = "/srv/home"
	res, err := Save(changed, path)
	require.NoError(t, err)
	require.NotEmpty(t, res.Backup)
	assert.FileExists(t, res.Backup)
	assert.False(t, res.Created)
}

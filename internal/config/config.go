// Package config provides configuration management for skel using Viper.
package config

import (
	"os"
	"slices"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/layout"
	"github.com/mthorborn/skel/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "skel"

// CurrentVersion is the config schema version this build reads and writes.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version int               `mapstructure:"version" yaml:"version"`
	BaseDir string            `mapstructure:"base_dir" yaml:"base_dir"`
	Layout  []string          `mapstructure:"layout" yaml:"layout"`
	Paths   map[string]string `mapstructure:"paths" yaml:"paths,omitempty"`
	Files   map[string]string `mapstructure:"files" yaml:"files,omitempty"`
	Mode    string            `mapstructure:"mode" yaml:"mode"`
	Backup  BackupConfig      `mapstructure:"backup" yaml:"backup"`
}

// BackupConfig controls backup-before-overwrite behavior for managed files.
type BackupConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Keep    int  `mapstructure:"keep" yaml:"keep"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// It resets any previous Viper state, so repeated calls start clean.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(layout.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("SKEL")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", CurrentVersion)
	viper.SetDefault("base_dir", "~")
	viper.SetDefault("layout", layout.DefaultLayout)
	viper.SetDefault("mode", "0600")
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.keep", backup.DefaultRetention)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and any failure
// is an error. If path is empty, it searches the default locations and
// falls back to default values when no file is found. Loaded
// configurations are validated; the first validation failure is
// returned.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(fileutil.Expand(path))
	}

	if err := viper.ReadInConfig(); err != nil {
		if path != "" {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
		// No config anywhere on the search path. Defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if err := reloadPathMaps(&cfg); err != nil {
		return nil, err
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// LoadDefault loads from the default locations, falling back to default
// values when no config file exists.
func LoadDefault() (*Config, error) {
	return Load("")
}

// reloadPathMaps re-reads the paths and files sections straight from
// the config file. Viper folds all keys to lower case, which would
// corrupt the case-sensitive path keys and file paths in those maps.
func reloadPathMaps(cfg *Config) error {
	file := viper.ConfigFileUsed()
	if file == "" {
		return nil
	}

	data, err := fileutil.ReadFileWithLimit(file)
	if err != nil {
		return errors.Wrapf(err, "rereading config file %s", file)
	}

	var raw struct {
		Paths map[string]string `yaml:"paths"`
		Files map[string]string `yaml:"files"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parsing config file %s", file)
	}

	cfg.Paths = raw.Paths
	cfg.Files = raw.Files
	return nil
}

// Default returns a configuration with default values, as written by
// skel init.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		BaseDir: "~",
		Layout:  slices.Clone(layout.DefaultLayout),
		Mode:    "0600",
		Backup: BackupConfig{
			Enabled: true,
			Keep:    backup.DefaultRetention,
		},
	}
}

// Save writes cfg as YAML to path with the config-file write defaults:
// an existing file is backed up first and the result is private.
func Save(cfg *Config, path string) (*fileutil.Result, error) {
	return fileutil.WriteYAMLFile(path, cfg,
		fileutil.WithBackup(true),
		fileutil.WithMode(fileutil.FileModeConfig),
	)
}

// FileMode returns the permissions managed files are written with. An
// empty mode string means the private config default.
func (c *Config) FileMode() (os.FileMode, error) {
	if c.Mode == "" {
		return fileutil.FileModeConfig, nil
	}
	mode, err := parseMode(c.Mode)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidMode, "parsing mode %q", c.Mode)
	}
	return mode, nil
}

// parseMode parses an octal permission string such as "0600" or "644".
func parseMode(s string) (os.FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if n > 0o777 {
		return 0, errors.Newf("mode %o has bits beyond permissions", n)
	}
	return os.FileMode(n), nil
}

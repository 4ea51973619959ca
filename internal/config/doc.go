// Package config provides configuration management for the skel CLI.
//
// This package handles loading, saving, and validating skel's own
// configuration file, which declares the directory skeleton and the
// files skel manages.
//
// # Configuration File
//
// The default configuration file location is ~/.config/skel/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	base_dir: "~"
//	layout:
//	  - .config
//	  - .local/share
//	  - bin
//	paths:
//	  config_dir: ~/.config/myapp
//	  config_file: ~/.config/myapp/config.yaml
//	files:
//	  ~/.config/myapp/config.yaml: |
//	    theme: dark
//	mode: "0600"
//	backup:
//	  enabled: true
//	  keep: 5
//
// Environment variables with the SKEL_ prefix override file values,
// so SKEL_BASE_DIR=/tmp/stage overrides base_dir.
//
// # Loading Configuration
//
// Use [LoadDefault] to load from the default location with graceful
// fallback to default values:
//
//	cfg, err := config.LoadDefault()
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// Use [Load] when you need to load from a specific path. With an
// explicit path a missing file is an error.
//
// # Validation
//
// All loaded configurations are validated automatically. You can also
// validate a configuration manually:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
//
// # Default Values
//
// The [Default] function returns the configuration skel init writes:
// schema version 1, home as the base directory, the built-in layout,
// private file mode, and backups enabled with a retention of 5.
package config

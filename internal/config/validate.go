package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mthorborn/skel/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a config schema version this
	// build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidMode indicates the mode field is not an octal
	// permission string.
	ErrInvalidMode = errors.New("invalid file mode")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrAbsoluteLayoutEntry indicates a layout entry that is not
	// relative to the base directory.
	ErrAbsoluteLayoutEntry = errors.New("layout entries must be relative")

	// ErrNegativeRetention indicates a backup keep count below zero.
	ErrNegativeRetention = errors.New("negative backup retention")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors in field order.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 || cfg.Version > CurrentVersion {
		errs = append(errs, &FieldError{
			Field: "version",
			Value: strconv.Itoa(cfg.Version),
			Err:   ErrUnsupportedVersion,
		})
	}

	if err := validatePath(cfg.BaseDir); err != nil {
		errs = append(errs, &FieldError{Field: "base_dir", Value: cfg.BaseDir, Err: err})
	}

	for i, dir := range cfg.Layout {
		if err := validateLayoutEntry(dir); err != nil {
			errs = append(errs, &FieldError{
				Field: "layout[" + strconv.Itoa(i) + "]",
				Value: dir,
				Err:   err,
			})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Paths)) {
		if err := validatePath(cfg.Paths[key]); err != nil {
			errs = append(errs, &FieldError{
				Field: "paths." + key,
				Value: cfg.Paths[key],
				Err:   err,
			})
		}
	}

	for _, path := range slices.Sorted(maps.Keys(cfg.Files)) {
		if path == "" {
			errs = append(errs, &FieldError{Field: "files", Value: path, Err: ErrInvalidPath})
			continue
		}
		if err := validatePath(path); err != nil {
			errs = append(errs, &FieldError{Field: "files", Value: path, Err: err})
		}
	}

	if cfg.Mode != "" {
		if _, err := parseMode(cfg.Mode); err != nil {
			errs = append(errs, &FieldError{Field: "mode", Value: cfg.Mode, Err: ErrInvalidMode})
		}
	}

	if cfg.Backup.Keep < 0 {
		errs = append(errs, &FieldError{
			Field: "backup.keep",
			Value: strconv.Itoa(cfg.Backup.Keep),
			Err:   ErrNegativeRetention,
		})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// validateLayoutEntry checks one layout entry. Entries must be
// non-empty, well-formed, and relative.
func validateLayoutEntry(dir string) error {
	if dir == "" {
		return ErrInvalidPath
	}
	if err := validatePath(dir); err != nil {
		return err
	}
	if filepath.IsAbs(dir) {
		return ErrAbsoluteLayoutEntry
	}
	return nil
}

// FieldError represents a validation error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

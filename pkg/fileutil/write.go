// Package fileutil implements the safe file-write protocol used across
// skel: home expansion, parent directory creation, optional timestamped
// backups before overwrites, and explicit permission assignment.
package fileutil

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/mthorborn/skel/internal/errors"
)

// Permission modes applied by the write helpers.
const (
	// FileModeDefault is the mode for ordinary files.
	FileModeDefault os.FileMode = 0o644
	// FileModeConfig is the mode for configuration files, which often
	// hold credentials.
	FileModeConfig os.FileMode = 0o600
	// DirModeDefault is the mode for created directories.
	DirModeDefault os.FileMode = 0o755
	// DirModePrivate is the mode for directories holding sensitive files.
	DirModePrivate os.FileMode = 0o700
)

// Options control how the write helpers treat the destination.
type Options struct {
	// Backup copies an existing destination aside before overwriting it.
	Backup bool

	// Mode is the permission set on the written file. Zero means no
	// explicit permissions: the file keeps its current mode, or gets
	// FileModeDefault subject to the process umask when created.
	Mode os.FileMode
}

// Option mutates Options.
type Option func(*Options)

// WithBackup toggles the pre-overwrite backup.
func WithBackup(enabled bool) Option {
	return func(o *Options) {
		o.Backup = enabled
	}
}

// WithMode sets the exact permission bits applied to the written file.
func WithMode(mode os.FileMode) Option {
	return func(o *Options) {
		o.Mode = mode
	}
}

// Result describes one completed write.
type Result struct {
	// Path is the expanded path that was written.
	Path string

	// Backup is the path of the pre-write copy of the destination,
	// or empty when no backup was made or requested.
	Backup string

	// Created reports that no existing file was backed up. It only
	// distinguishes new files from overwrites when the write requested
	// a backup; without one it is true for overwrites as well.
	Created bool
}

// WriteFile writes data to path using the safe-write sequence: expand a
// leading "~", create missing parent directories, optionally back up an
// existing destination, write the content in full, then set permissions.
// The steps run in that order and the first failure aborts the rest.
func WriteFile(path string, data []byte, opts ...Option) (*Result, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return writeFile(path, data, options)
}

func writeFile(path string, data []byte, options Options) (*Result, error) {
	expanded := Expand(path)

	// The parent may be missing even when the target is not, for
	// example after a manual cleanup between runs.
	if _, err := EnsureDir(filepath.Dir(expanded)); err != nil {
		return nil, err
	}

	var backupPath string
	if options.Backup {
		bp, err := Backup(expanded)
		if err != nil {
			return nil, err
		}
		backupPath = bp
	}

	mode := options.Mode
	if mode == 0 {
		mode = FileModeDefault
	}
	if err := os.WriteFile(expanded, data, mode); err != nil {
		return nil, errors.Wrapf(err, "writing %s", expanded)
	}

	// os.WriteFile applies the mode only on creation, and the umask can
	// strip bits even then. An explicit chmod makes the requested mode
	// stick for new and existing files alike.
	if options.Mode != 0 {
		if err := os.Chmod(expanded, options.Mode); err != nil {
			return nil, errors.Wrapf(err, "setting permissions on %s", expanded)
		}
	}

	return &Result{
		Path:    expanded,
		Backup:  backupPath,
		Created: backupPath == "",
	}, nil
}

// WriteFiles writes each path/content pair with WriteFile, in lexical
// path order. A failure stops the batch: results for the writes that
// completed are returned alongside the error, and nothing is rolled
// back.
func WriteFiles(files map[string]string, opts ...Option) ([]Result, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	results := make([]Result, 0, len(files))
	for _, path := range slices.Sorted(maps.Keys(files)) {
		res, err := writeFile(path, []byte(files[path]), options)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// WriteConfigFiles writes configuration files with protective defaults:
// existing destinations are backed up and permissions are owner
// read-write only. Explicit options override the defaults field by
// field.
func WriteConfigFiles(files map[string]string, opts ...Option) ([]Result, error) {
	defaults := []Option{WithBackup(true), WithMode(FileModeConfig)}
	return WriteFiles(files, append(defaults, opts...)...)
}

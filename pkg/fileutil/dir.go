package fileutil

import (
	"os"

	"github.com/mthorborn/skel/internal/errors"
)

// EnsureDir creates the directory at path, and any missing parents,
// after home expansion. It is idempotent and returns the expanded path.
func EnsureDir(path string) (string, error) {
	expanded := Expand(path)
	if err := os.MkdirAll(expanded, DirModeDefault); err != nil {
		return "", errors.Wrapf(err, "creating directory %s", expanded)
	}
	return expanded, nil
}

// EnsureDirs creates every directory in paths in order, returning the
// expanded path of each directory created before the first failure.
// Directories already created stay in place when a later one fails.
func EnsureDirs(paths []string) ([]string, error) {
	created := make([]string, 0, len(paths))
	for _, path := range paths {
		expanded, err := EnsureDir(path)
		if err != nil {
			return created, err
		}
		created = append(created, expanded)
	}
	return created, nil
}

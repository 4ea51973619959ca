package fileutil

import (
	"os"

	"github.com/mthorborn/skel/internal/errors"
)

// Exists reports whether path refers to anything on disk, after home
// expansion. Broken symlinks count as existing.
func Exists(path string) bool {
	_, err := os.Lstat(Expand(path))
	return err == nil
}

// Stat returns file info for path after home expansion.
func Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(Expand(path))
	if err != nil {
		return nil, errors.Wrapf(err, "stating %s", path)
	}
	return info, nil
}

package fileutil

import (
	"io"
	"os"

	"github.com/mthorborn/skel/internal/errors"
)

// MaxFileSize is the maximum file size ReadFileWithLimit will read (1MB).
// This prevents memory exhaustion from unexpectedly large files.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads the file at path, after home expansion, up to
// MaxFileSize. It returns ErrFileTooLarge for anything bigger.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(Expand(path))
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large
	info, err := f.Stat()
	if err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

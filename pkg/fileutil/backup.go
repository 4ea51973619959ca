package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/mthorborn/skel/internal/errors"
)

// BackupMarker is the suffix segment identifying timestamped backup
// copies, as in "app.ini.backup-2026-08-24T12-34-56-789Z".
const BackupMarker = ".backup-"

// timestampSanitizer strips the characters in RFC 3339 timestamps that
// are unsafe or awkward in file names.
var timestampSanitizer = strings.NewReplacer(":", "-", ".", "-")

// Backup copies the file at path to a timestamped sibling and returns
// the sibling's path. A missing source is not an error: Backup returns
// "" to signal there was nothing to copy. The copy preserves the
// source's permission bits, and the source itself is left untouched.
func Backup(path string) (string, error) {
	src := Expand(path)

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "stating %s", src)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Wrapf(errors.ErrNotRegularFile, "backing up %s", src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", src)
	}

	dst := backupPath(src, time.Now())
	perm := info.Mode().Perm()
	if err := os.WriteFile(dst, data, perm); err != nil {
		return "", errors.Wrapf(err, "writing backup %s", dst)
	}
	if err := os.Chmod(dst, perm); err != nil {
		return "", errors.Wrapf(err, "setting permissions on %s", dst)
	}

	return dst, nil
}

// backupPath derives the backup destination for src at time now.
// Timestamps are UTC with millisecond resolution, so they sort
// lexically; a numeric disambiguator is appended when a backup with the
// same stamp already exists.
func backupPath(src string, now time.Time) string {
	stamp := timestampSanitizer.Replace(now.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	base := src + BackupMarker + stamp
	dst := base
	for n := 2; Exists(dst); n++ {
		dst = fmt.Sprintf("%s-%d", base, n)
	}
	return dst
}

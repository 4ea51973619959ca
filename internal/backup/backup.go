package backup

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/pkg/fileutil"
)

// stampLen is the length of an undisambiguated backup timestamp,
// for example "2026-08-24T12-34-56-789Z".
const stampLen = len("2006-01-02T15-04-05-000Z")

// List returns every backup of original, newest first. It returns
// ErrNoBackups when the file has no backups at all.
func List(original string) ([]Entry, error) {
	src := fileutil.Expand(original)
	dir := filepath.Dir(src)
	prefix := filepath.Base(src) + fileutil.BackupMarker

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackups, "for %s", src)
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	backups := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasPrefix(de.Name(), prefix) {
			continue
		}
		createdAt, ok := parseStamp(strings.TrimPrefix(de.Name(), prefix))
		if !ok {
			// Unrelated file that happens to share the prefix
			continue
		}
		backups = append(backups, Entry{
			Path:      filepath.Join(dir, de.Name()),
			Original:  src,
			CreatedAt: createdAt,
		})
	}

	if len(backups) == 0 {
		return nil, errors.Wrapf(ErrNoBackups, "for %s", src)
	}

	sortNewestFirst(backups)
	return backups, nil
}

// ListAll returns every backup found directly under dir, newest first.
// An empty result is not an error: scanning a directory is exploratory,
// unlike asking for the backups of a specific file.
func ListAll(dir string) ([]Entry, error) {
	expanded := fileutil.Expand(dir)

	dirEntries, err := os.ReadDir(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", expanded)
	}

	var backups []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		// The original name may itself contain the marker, so split at
		// the last occurrence.
		idx := strings.LastIndex(de.Name(), fileutil.BackupMarker)
		if idx <= 0 {
			continue
		}
		createdAt, ok := parseStamp(de.Name()[idx+len(fileutil.BackupMarker):])
		if !ok {
			continue
		}
		backups = append(backups, Entry{
			Path:      filepath.Join(expanded, de.Name()),
			Original:  filepath.Join(expanded, de.Name()[:idx]),
			CreatedAt: createdAt,
		})
	}

	sortNewestFirst(backups)
	return backups, nil
}

// Latest returns the most recent backup of original.
func Latest(original string) (*Entry, error) {
	backups, err := List(original)
	if err != nil {
		return nil, err
	}
	return &backups[0], nil
}

// Restore copies the backup at e.Path back over its original location.
// The current file, if any, is backed up first so the restore itself
// can be undone; the path of that safety copy is returned, or "" when
// the original no longer existed.
func Restore(e Entry) (string, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return "", errors.Wrapf(err, "reading backup %s", e.Path)
	}

	info, err := os.Stat(e.Path)
	if err != nil {
		return "", errors.Wrapf(err, "stating backup %s", e.Path)
	}

	res, err := fileutil.WriteFile(e.Original, data,
		fileutil.WithBackup(true),
		fileutil.WithMode(info.Mode().Perm()),
	)
	if err != nil {
		return "", errors.Wrapf(err, "restoring %s", e.Original)
	}

	return res.Backup, nil
}

// Prune removes backups of original beyond the keep most recent,
// returning the paths it removed. A file with no backups prunes to
// nothing without error.
func Prune(original string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	backups, err := List(original)
	if err != nil {
		if errors.Is(err, ErrNoBackups) {
			return nil, nil
		}
		return nil, err
	}
	if keep >= len(backups) {
		return nil, nil
	}

	var removed []string
	for _, e := range backups[keep:] {
		if err := os.Remove(e.Path); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", e.Path)
		}
		removed = append(removed, e.Path)
	}
	return removed, nil
}

// sortNewestFirst orders backups by creation time descending. Path
// order breaks ties so same-stamp disambiguated copies ("-2", "-3")
// stay in creation order.
func sortNewestFirst(backups []Entry) {
	slices.SortFunc(backups, func(a, b Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
}

// parseStamp parses the timestamp portion of a backup name, for
// example "2026-08-24T12-34-56-789Z" or "2026-08-24T12-34-56-789Z-2".
// It reports false for anything that is not a sanitized RFC 3339 UTC
// stamp with optional numeric disambiguator.
func parseStamp(stamp string) (time.Time, bool) {
	if len(stamp) > stampLen {
		rest := stamp[stampLen:]
		if len(rest) < 2 || rest[0] != '-' {
			return time.Time{}, false
		}
		for i := 1; i < len(rest); i++ {
			if rest[i] < '0' || rest[i] > '9' {
				return time.Time{}, false
			}
		}
		stamp = stamp[:stampLen]
	}
	if len(stamp) != stampLen {
		return time.Time{}, false
	}

	// Undo the file-name sanitization: 15-04-05-000 back to 15:04:05.000.
	b := []byte(stamp)
	if b[13] != '-' || b[16] != '-' || b[19] != '-' {
		return time.Time{}, false
	}
	b[13], b[16], b[19] = ':', ':', '.'

	t, err := time.Parse(time.RFC3339, string(b))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

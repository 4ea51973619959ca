package layout

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/mthorborn/skel/pkg/fileutil"
)

// Kind classifies a paths-object entry.
type Kind int

const (
	// KindDir marks an entry whose value is a directory path.
	KindDir Kind = iota

	// KindFile marks an entry whose value is a file path.
	KindFile
)

// String returns "dir" or "file".
func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "dir"
}

// fileKeys are the paths-object keys whose values name files rather
// than directories. Matching is case-insensitive.
var fileKeys = map[string]struct{}{
	"config_file":      {},
	"credentials_file": {},
	"env_file":         {},
	"log_file":         {},
}

// IsFileKey reports whether a paths-object key names a file.
// "Config_File" and "CONFIG_FILE" both match.
func IsFileKey(key string) bool {
	_, ok := fileKeys[strings.ToLower(key)]
	return ok
}

// Path is one classified entry of a paths object.
type Path struct {
	Key   string
	Value string
	Kind  Kind
}

// Classify tags every entry of a paths object as a file or directory
// path, sorted by key. Key matching happens only here; downstream code
// switches on Kind.
func Classify(paths map[string]string) []Path {
	out := make([]Path, 0, len(paths))
	for key, value := range paths {
		kind := KindDir
		if IsFileKey(key) {
			kind = KindFile
		}
		out = append(out, Path{Key: key, Value: value, Kind: kind})
	}
	slices.SortFunc(out, func(a, b Path) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

// DirsForPaths returns the directories a paths object implies,
// deduplicated and sorted. File entries contribute their parent
// directory, directory entries contribute themselves. Entries with
// empty values are skipped.
func DirsForPaths(paths map[string]string) []string {
	seen := make(map[string]struct{}, len(paths))
	var dirs []string
	for _, p := range Classify(paths) {
		if p.Value == "" {
			continue
		}
		dir := p.Value
		if p.Kind == KindFile {
			dir = filepath.Dir(p.Value)
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

// EnsurePaths creates every directory a paths object implies and
// returns the resolved paths it ensured.
func EnsurePaths(paths map[string]string) ([]string, error) {
	return fileutil.EnsureDirs(DirsForPaths(paths))
}

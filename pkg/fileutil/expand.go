package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" in path with home. Only the bare
// marker and the "~/" prefix expand; anything else, including "~user"
// forms, is returned unchanged.
func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}

// Expand replaces a leading "~" in path with the current user's home
// directory. If the home directory cannot be determined, path is
// returned unchanged.
func Expand(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return ExpandHome(path, home)
}

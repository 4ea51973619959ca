package layout

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/mthorborn/skel/pkg/fileutil"
)

// DefaultLayout is the directory skeleton applied when a config file
// names no other. Entries are relative to the base directory and are
// created in this order.
var DefaultLayout = []string{
	".config",
	".local/share",
	".local/state",
	".cache",
	"bin",
}

// Scaffold creates every layout entry under base and returns the
// resolved paths it ensured. An empty base means the user's home
// directory.
func Scaffold(base string, dirs []string) ([]string, error) {
	if base == "" {
		base = "~"
	}
	prefixed := make([]string, len(dirs))
	for i, dir := range dirs {
		prefixed[i] = filepath.Join(base, dir)
	}
	return fileutil.EnsureDirs(prefixed)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
func DataHome() string {
	return xdg.DataHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
// On macOS: ~/Library/Application Support
func StateHome() string {
	return xdg.StateHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns skel's own configuration directory.
// Returns: <ConfigHome>/skel/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), "skel")
}

// ConfigFile returns the path of skel's configuration file.
// Returns: <ConfigDir>/config.yaml
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

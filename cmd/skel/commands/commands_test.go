package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"

	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/ui"
)

// setupCommandTest points HOME at a temp directory so commands operate
// on an isolated filesystem, and strips color codes from UI output.
// The xdg cache is reloaded on the way in and again after the env is
// restored.
func setupCommandTest(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	xdg.Reload()

	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	return home
}

// testUI returns a non-interactive UI writing to a buffer, so prompts
// resolve to their defaults and output can be asserted on.
func testUI() (*ui.UI, *bytes.Buffer) {
	var buf bytes.Buffer
	u := ui.NewWithWriter(&buf)
	u.SetNonInteractive(true)
	return u, &buf
}

// testConfig returns the default config rooted at home instead of "~".
func testConfig(home string) *config.Config {
	cfg := config.Default()
	cfg.BaseDir = home
	return cfg
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

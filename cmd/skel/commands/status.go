package commands

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/cmd"
	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/layout"
	"github.com/mthorborn/skel/pkg/fileutil"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show managed paths and their state",
	Long: `Show the state of every directory and file the configuration
manages.

Directories report whether they exist. Managed files additionally
report whether their content still matches the configuration and how
many backups they have. A path that exists but has the wrong type
(a file where a directory belongs, or the reverse) is a conflict.`,
	Example: `  # Show status of all managed paths
  skel status

  # JSON output for scripting
  skel status --json`,
	RunE: runStatus,
}

// statusEntry is the state of one managed path.
type statusEntry struct {
	Type    string `json:"type"` // dir or file
	Path    string `json:"path"`
	State   string `json:"state"` // ok, missing, modified, conflict, unreadable
	Mode    string `json:"mode,omitempty"`
	Backups int    `json:"backups,omitempty"`
}

type statusOutput struct {
	Version string        `json:"version"`
	BaseDir string        `json:"base_dir"`
	Entries []statusEntry `json:"entries"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return runStatusWithWriter(cmd.OutOrStdout(), rootCfg)
}

// runStatusWithWriter allows injecting a writer for testing.
func runStatusWithWriter(w io.Writer, cfg *config.Config) error {
	output := collectStatus(cfg)

	if statusJSON {
		return encodeJSON(w, output)
	}

	fmt.Fprintf(w, "skel version %s\n", cmd.Version)
	fmt.Fprintf(w, "Base directory: %s\n\n", output.BaseDir)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPATH\tSTATE\tMODE\tBACKUPS")
	for _, e := range output.Entries {
		mode := e.Mode
		if mode == "" {
			mode = "-"
		}
		backups := "-"
		if e.Type == "file" {
			backups = fmt.Sprintf("%d", e.Backups)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Type, e.Path, e.State, mode, backups)
	}
	return tw.Flush()
}

// collectStatus gathers the state of every managed path: the layout
// directories, the paths object, and the managed files.
func collectStatus(cfg *config.Config) statusOutput {
	base := cfg.BaseDir
	if base == "" {
		base = "~"
	}

	output := statusOutput{
		Version: cmd.Version,
		BaseDir: base,
	}
	seen := make(map[string]struct{})
	add := func(e statusEntry) {
		if _, ok := seen[e.Path]; ok {
			return
		}
		seen[e.Path] = struct{}{}
		output.Entries = append(output.Entries, e)
	}

	// Managed files first so a path named by both the files map and a
	// paths file key reports content drift, not just existence.
	for _, path := range slices.Sorted(maps.Keys(cfg.Files)) {
		want := cfg.Files[path]
		add(statusFile(path, []byte(want)))
	}

	for _, dir := range cfg.Layout {
		add(statusDir(filepath.Join(base, dir)))
	}

	for _, p := range layout.Classify(cfg.Paths) {
		if p.Value == "" {
			continue
		}
		if p.Kind == layout.KindFile {
			add(statusFile(p.Value, nil))
		} else {
			add(statusDir(p.Value))
		}
	}

	return output
}

func statusDir(path string) statusEntry {
	entry := statusEntry{Type: "dir", Path: path}

	info, err := fileutil.Stat(fileutil.Expand(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		entry.State = "missing"
	case err != nil:
		entry.State = "unreadable"
	case !info.IsDir():
		entry.State = "conflict"
		entry.Mode = fmt.Sprintf("%04o", info.Mode().Perm())
	default:
		entry.State = "ok"
		entry.Mode = fmt.Sprintf("%04o", info.Mode().Perm())
	}
	return entry
}

// statusFile reports a managed file. A nil want checks existence only;
// otherwise the content is compared against the configuration.
func statusFile(path string, want []byte) statusEntry {
	entry := statusEntry{Type: "file", Path: path}
	entry.Backups = countBackups(path)

	expanded := fileutil.Expand(path)
	info, err := fileutil.Stat(expanded)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		entry.State = "missing"
		return entry
	case err != nil:
		entry.State = "unreadable"
		return entry
	case info.IsDir():
		entry.State = "conflict"
		return entry
	}
	entry.Mode = fmt.Sprintf("%04o", info.Mode().Perm())

	if want == nil {
		entry.State = "ok"
		return entry
	}

	got, err := fileutil.ReadFileWithLimit(expanded)
	if err != nil {
		entry.State = "unreadable"
		return entry
	}
	if bytes.Equal(got, want) {
		entry.State = "ok"
	} else {
		entry.State = "modified"
	}
	return entry
}

func countBackups(path string) int {
	backups, err := backup.List(path)
	if err != nil {
		return 0
	}
	return len(backups)
}

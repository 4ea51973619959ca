package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/layout"
	"github.com/mthorborn/skel/internal/logging"
	"github.com/mthorborn/skel/internal/ui"
	"github.com/mthorborn/skel/pkg/fileutil"
)

var (
	applyDryRun bool
	applyJSON   bool
)

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show the plan without writing anything")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the configured layout and files",
	Long: `Apply the configuration: create the directory skeleton under the
base directory, create every directory the paths object implies, and
write the managed files.

Files are written with the configured mode. When backups are enabled,
an existing file is copied to a timestamped sibling before it is
overwritten, and old backups beyond the retention count are pruned
(keep: 0 retains everything).`,
	Example: `  # Preview without writing
  skel apply --dry-run

  # Apply with confirmation
  skel apply

  # Apply unattended
  skel apply --yes

  # Machine-readable results
  skel apply --yes --json

  See Also: skel status, skel backups`,
	PreRunE: validateApplyFlags,
	RunE:    runApply,
}

// validateApplyFlags keeps --json runs non-interactive so stdout stays
// machine-readable.
func validateApplyFlags(_ *cobra.Command, _ []string) error {
	if applyJSON && !assumeYes && !applyDryRun {
		return errors.NewUserError(
			errors.New("--json requires --yes or --dry-run"),
			"Pass --yes to skip the confirmation prompt",
		)
	}
	return nil
}

func runApply(cmd *cobra.Command, _ []string) error {
	return runApplyWithWriter(cmd.OutOrStdout(), newUI(), logging.FromContext(cmd.Context()), rootCfg)
}

// applyPlan is what an apply run intends to do, in display paths.
type applyPlan struct {
	BaseDir string        `json:"base_dir"`
	Dirs    []string      `json:"dirs"`
	Files   []plannedFile `json:"files"`
	Mode    string        `json:"mode"`
	Backup  bool          `json:"backup"`
	Keep    int           `json:"keep"`

	mode os.FileMode
}

type plannedFile struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// applyReport is what an apply run actually did, in resolved paths.
type applyReport struct {
	Dirs   []string          `json:"dirs"`
	Files  []applyFileResult `json:"files"`
	Pruned []string          `json:"pruned,omitempty"`
}

type applyFileResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
	Backup  string `json:"backup,omitempty"`
}

func runApplyWithWriter(w io.Writer, u *ui.UI, log *slog.Logger, cfg *config.Config) error {
	plan, err := buildApplyPlan(cfg)
	if err != nil {
		return err
	}

	if applyDryRun {
		if applyJSON {
			return encodeJSON(w, plan)
		}
		printApplyPlan(w, plan)
		return nil
	}

	if !applyJSON {
		printApplyPlan(w, plan)
	}

	ok, err := u.Confirm("Apply these changes?", true)
	if err != nil {
		return errors.Wrap(err, "reading confirmation")
	}
	if !ok {
		u.Print("Aborted")
		return nil
	}

	report, err := executeApplyPlan(u, log, cfg, plan)
	if err != nil {
		return err
	}

	if applyJSON {
		return encodeJSON(w, report)
	}

	u.Successf("Applied: %d directories, %d files", len(report.Dirs), len(report.Files))
	if len(report.Pruned) > 0 {
		u.Infof("Pruned %d old backups", len(report.Pruned))
	}
	return nil
}

// buildApplyPlan resolves the config into the directories to ensure and
// the files to write, without touching the filesystem.
func buildApplyPlan(cfg *config.Config) (*applyPlan, error) {
	mode, err := cfg.FileMode()
	if err != nil {
		return nil, err
	}

	base := cfg.BaseDir
	if base == "" {
		base = "~"
	}

	seen := make(map[string]struct{})
	var dirs []string
	addDir := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, dir := range cfg.Layout {
		addDir(filepath.Join(base, dir))
	}
	for _, dir := range layout.DirsForPaths(cfg.Paths) {
		addDir(dir)
	}

	files := make([]plannedFile, 0, len(cfg.Files))
	for _, path := range slices.Sorted(maps.Keys(cfg.Files)) {
		files = append(files, plannedFile{
			Path:   path,
			Exists: fileutil.Exists(fileutil.Expand(path)),
		})
	}

	return &applyPlan{
		BaseDir: base,
		Dirs:    dirs,
		Files:   files,
		Mode:    fmt.Sprintf("%04o", mode),
		Backup:  cfg.Backup.Enabled,
		Keep:    cfg.Backup.Keep,
		mode:    mode,
	}, nil
}

func printApplyPlan(w io.Writer, plan *applyPlan) {
	fmt.Fprintf(w, "Plan for base directory %s:\n", plan.BaseDir)
	for _, dir := range plan.Dirs {
		fmt.Fprintf(w, "  dir   %s\n", dir)
	}
	for _, f := range plan.Files {
		switch {
		case f.Exists && plan.Backup:
			fmt.Fprintf(w, "  file  %s (overwrite, backup)\n", f.Path)
		case f.Exists:
			fmt.Fprintf(w, "  file  %s (overwrite)\n", f.Path)
		default:
			fmt.Fprintf(w, "  file  %s (new)\n", f.Path)
		}
	}
	fmt.Fprintf(w, "File mode %s", plan.Mode)
	if plan.Backup {
		if plan.Keep > 0 {
			fmt.Fprintf(w, ", backups enabled (keep %d)", plan.Keep)
		} else {
			fmt.Fprint(w, ", backups enabled (keep all)")
		}
	} else {
		fmt.Fprint(w, ", backups disabled")
	}
	fmt.Fprintln(w)
}

func executeApplyPlan(u *ui.UI, log *slog.Logger, cfg *config.Config, plan *applyPlan) (*applyReport, error) {
	report := &applyReport{}
	seen := make(map[string]struct{})
	recordDirs := func(dirs []string) {
		for _, dir := range dirs {
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			report.Dirs = append(report.Dirs, dir)
		}
	}

	created, err := layout.Scaffold(cfg.BaseDir, cfg.Layout)
	recordDirs(created)
	if err != nil {
		return report, errors.Wrap(err, "scaffolding layout")
	}
	log.Debug("scaffolded layout", "base", plan.BaseDir, "dirs", len(created))

	ensured, err := layout.EnsurePaths(cfg.Paths)
	recordDirs(ensured)
	if err != nil {
		return report, errors.Wrap(err, "ensuring path directories")
	}

	results, werr := fileutil.WriteFiles(cfg.Files,
		fileutil.WithBackup(cfg.Backup.Enabled),
		fileutil.WithMode(plan.mode),
	)
	for _, res := range results {
		report.Files = append(report.Files, applyFileResult{
			Path:    res.Path,
			Created: res.Created,
			Backup:  res.Backup,
		})
		if res.Backup != "" {
			u.Successf("wrote %s (backup: %s)", res.Path, filepath.Base(res.Backup))
		} else {
			u.Successf("wrote %s", res.Path)
		}
		log.Debug("wrote managed file", "path", res.Path, "created", res.Created)
	}
	if werr != nil {
		return report, errors.Wrap(werr, "writing managed files")
	}

	// Retention housekeeping. Failures here never fail the apply.
	if cfg.Backup.Enabled && cfg.Backup.Keep > 0 {
		for _, res := range results {
			removed, perr := backup.Prune(res.Path, cfg.Backup.Keep)
			if perr != nil {
				u.Warningf("pruning backups for %s: %v", res.Path, perr)
				continue
			}
			report.Pruned = append(report.Pruned, removed...)
		}
	}

	return report, nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

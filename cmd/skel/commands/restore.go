package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/logging"
	"github.com/mthorborn/skel/internal/ui"
	"github.com/mthorborn/skel/pkg/fileutil"
)

var (
	restoreLatest bool
	restoreBackup string
)

func init() {
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "restore from the most recent backup")
	restoreCmd.Flags().StringVar(&restoreBackup, "backup", "", "restore from a specific backup file")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a file from one of its backups",
	Long: `Restore a managed file from one of its timestamped backups.

Without flags an interactive picker lists the available backups with a
content preview. The current content of the file is backed up before it
is replaced, so a restore can itself be undone.`,
	Example: `  # Pick a backup interactively
  skel restore ~/.config/git/config

  # Restore the most recent backup without prompting
  skel restore ~/.config/git/config --latest --yes

  # Restore a specific backup file
  skel restore ~/.config/git/config --backup ~/.config/git/config.backup-2026-08-24T10-00-00-000Z

See Also:
  skel backups - List available backups`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateRestoreFlags,
	RunE:    runRestore,
}

func validateRestoreFlags(_ *cobra.Command, _ []string) error {
	if restoreLatest && restoreBackup != "" {
		return errors.NewUserError(
			errors.New("--latest and --backup are mutually exclusive"),
			"Pass at most one of --latest and --backup",
		)
	}
	return nil
}

func runRestore(_ *cobra.Command, args []string) error {
	return runRestoreWithUI(newUI(), args[0])
}

func runRestoreWithUI(u *ui.UI, file string) error {
	entry, err := selectBackup(u, file)
	if err != nil || entry == nil {
		return err
	}

	u.Infof("This will replace %s with %s", file, entry.Path)
	ok, err := u.Confirm("Proceed with restore?", true)
	if err != nil {
		return errors.Wrap(err, "confirming restore")
	}
	if !ok {
		u.Info("Restore cancelled")
		return nil
	}

	undo, err := backup.Restore(*entry)
	if err != nil {
		return err
	}

	u.Successf("Restored %s", file)
	if undo != "" {
		u.Infof("Previous content saved to %s", undo)
	}
	return nil
}

// selectBackup picks the backup to restore from. A nil entry with a nil
// error means the user cancelled.
func selectBackup(u *ui.UI, file string) (*backup.Entry, error) {
	if restoreBackup != "" {
		path := fileutil.Expand(restoreBackup)
		if !fileutil.Exists(path) {
			return nil, errors.NewUserError(
				errors.Newf("backup %s does not exist", restoreBackup),
				"Run 'skel backups' to list available backups",
			)
		}
		return &backup.Entry{Path: path, Original: file}, nil
	}

	entries, err := backup.List(file)
	if err != nil {
		return nil, err
	}

	if restoreLatest {
		return &entries[0], nil
	}

	if u.IsNonInteractive() || !logging.IsTTY(os.Stdin) {
		return nil, errors.NewUserError(
			errors.New("no backup selected"),
			"Pass --latest or --backup when running non-interactively",
		)
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s  %s",
				entries[i].CreatedAt.Local().Format("2006-01-02 15:04:05"),
				entries[i].Path,
			)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewBackup(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			u.Info("Restore cancelled")
			return nil, nil
		}
		return nil, errors.Wrap(err, "running backup picker")
	}
	return &entries[idx], nil
}

func previewBackup(e backup.Entry) string {
	header := fmt.Sprintf("%s\ncreated %s\n\n", e.Path, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	data, err := fileutil.ReadFileWithLimit(e.Path)
	if err != nil {
		return header + fmt.Sprintf("(unreadable: %v)", err)
	}
	return header + string(data)
}

package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/pkg/fileutil"
)

var (
	backupsDir  string
	backupsJSON bool
)

func init() {
	backupsCmd.Flags().StringVar(&backupsDir, "dir", "", "list every backup found in a directory")
	backupsCmd.Flags().BoolVar(&backupsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups [file]",
	Short: "List backups of managed files",
	Long: `List the timestamped backups that exist for managed files.

Without arguments every file in the configuration is checked. Pass a
file path to list backups of that file only, or --dir to scan a
directory for backups regardless of the configuration.`,
	Example: `  # List backups of all managed files
  skel backups

  # List backups of one file
  skel backups ~/.config/git/config

  # Scan a directory for backups
  skel backups --dir ~/.config/git

See Also:
  skel restore - Restore a file from a backup
  skel prune   - Remove old backups`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateBackupsFlags,
	RunE:    runBackups,
}

func validateBackupsFlags(_ *cobra.Command, args []string) error {
	if backupsDir != "" && len(args) > 0 {
		return errors.NewUserError(
			errors.New("--dir cannot be combined with a file argument"),
			"Pass either a file or --dir, not both",
		)
	}
	return nil
}

// backupRow is one backup in listing output.
type backupRow struct {
	Original  string    `json:"original"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size,omitempty"`
}

func runBackups(cmd *cobra.Command, args []string) error {
	return runBackupsWithWriter(cmd.OutOrStdout(), rootCfg, args)
}

// runBackupsWithWriter allows injecting a writer for testing.
func runBackupsWithWriter(w io.Writer, cfg *config.Config, args []string) error {
	rows, err := collectBackups(cfg, args)
	if err != nil {
		return err
	}

	if backupsJSON {
		if rows == nil {
			rows = []backupRow{}
		}
		return encodeJSON(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No backups found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORIGINAL\tCREATED\tSIZE\tBACKUP")
	for _, row := range rows {
		size := "-"
		if row.Size > 0 {
			size = fmt.Sprintf("%d", row.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.Original,
			row.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			size,
			row.Path,
		)
	}
	return tw.Flush()
}

func collectBackups(cfg *config.Config, args []string) ([]backupRow, error) {
	switch {
	case backupsDir != "":
		entries, err := backup.ListAll(backupsDir)
		if err != nil {
			return nil, err
		}
		return toRows(entries), nil

	case len(args) == 1:
		entries, err := backup.List(args[0])
		if errors.Is(err, backup.ErrNoBackups) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return toRows(entries), nil

	default:
		var rows []backupRow
		for _, path := range slices.Sorted(maps.Keys(cfg.Files)) {
			entries, err := backup.List(path)
			if errors.Is(err, backup.ErrNoBackups) {
				continue
			}
			if err != nil {
				return nil, err
			}
			rows = append(rows, toRows(entries)...)
		}
		return rows, nil
	}
}

func toRows(entries []backup.Entry) []backupRow {
	rows := make([]backupRow, 0, len(entries))
	for _, e := range entries {
		row := backupRow{
			Original:  e.Original,
			Path:      e.Path,
			CreatedAt: e.CreatedAt,
		}
		if info, err := fileutil.Stat(e.Path); err == nil {
			row.Size = info.Size()
		}
		rows = append(rows, row)
	}
	return rows
}

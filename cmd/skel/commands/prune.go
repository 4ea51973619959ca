package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/internal/backup"
	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/ui"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "number of backups to keep per file (default from config)")
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune [file]",
	Short: "Remove old backups",
	Long: `Remove old backups of managed files, keeping only the most recent
ones.

Without arguments every file in the configuration is pruned. Pass a
file path to prune backups of that file only. The number of backups to
keep comes from backup.keep in the configuration unless --keep is
given; --keep 0 removes every backup.`,
	Example: `  # Prune all managed files to the configured retention
  skel prune

  # Keep only the two most recent backups of one file
  skel prune ~/.config/git/config --keep 2

  # Remove every backup of one file
  skel prune ~/.config/git/config --keep 0 --yes

See Also:
  skel backups - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	keep := rootCfg.Backup.Keep
	if cmd.Flags().Changed("keep") {
		keep = pruneKeep
	} else if keep <= 0 {
		newUI().Info("Backup retention is unlimited; pass --keep to prune anyway")
		return nil
	}
	return runPruneWithUI(newUI(), rootCfg, args, keep)
}

func runPruneWithUI(u *ui.UI, cfg *config.Config, args []string, keep int) error {
	if keep < 0 {
		return errors.NewUserError(
			errors.Newf("invalid retention %d", keep),
			"Pass --keep 0 or greater",
		)
	}

	files := args
	if len(files) == 0 {
		files = slices.Sorted(maps.Keys(cfg.Files))
	}
	if len(files) == 0 {
		u.Info("No managed files to prune")
		return nil
	}

	if keep == 0 {
		u.Warningf("This will remove every backup of %d file(s)", len(files))
	} else {
		u.Infof("This will keep the %d most recent backup(s) of %d file(s)", keep, len(files))
	}
	ok, err := u.Confirm("Proceed?", true)
	if err != nil {
		return errors.Wrap(err, "confirming prune")
	}
	if !ok {
		u.Info("Prune cancelled")
		return nil
	}

	total := 0
	for _, file := range files {
		removed, err := backup.Prune(file, keep)
		for _, path := range removed {
			u.Infof("removed %s", path)
		}
		if err != nil {
			return errors.Wrapf(err, "pruning backups of %s", file)
		}
		total += len(removed)
	}

	if total == 0 {
		u.Success("Nothing to prune")
		return nil
	}
	u.Successf("Removed %d backup(s)", total)
	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/layout"
	"github.com/mthorborn/skel/internal/ui"
	"github.com/mthorborn/skel/pkg/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Write a starter skel configuration file.

Creates ~/.config/skel/config.yaml with the built-in directory layout,
private file mode, and backups enabled. An existing config is left
alone unless --force is given; overwriting backs the old file up first.`,
	Example: `  # Write the starter config
  skel init

  # Non-interactively
  skel init --yes

  # Replace an existing config (a backup is kept)
  skel init --force

  # Write it somewhere else
  skel init --config ./skel.yaml

  See Also: skel apply, skel status`,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = layout.ConfigFile()
	}
	return runInitWithUI(newUI(), path, initForce)
}

func runInitWithUI(u *ui.UI, path string, force bool) error {
	if fileutil.Exists(fileutil.Expand(path)) && !force {
		u.Warningf("Configuration already exists at %s", path)
		u.Print("Use --force to overwrite")
		return nil
	}

	u.Infof("This will create %s", path)
	ok, err := u.Confirm("Proceed?", true)
	if err != nil {
		return errors.Wrap(err, "reading confirmation")
	}
	if !ok {
		u.Print("Aborted")
		return nil
	}

	res, err := config.Save(config.Default(), path)
	if err != nil {
		return errors.Wrap(err, "writing starter config")
	}

	if res.Backup != "" {
		u.Infof("Backed up previous config to %s", res.Backup)
	}
	u.Successf("Created %s", res.Path)
	return nil
}

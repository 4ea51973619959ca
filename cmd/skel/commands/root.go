// Package commands implements the CLI commands for skel.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mthorborn/skel/cmd"
	"github.com/mthorborn/skel/internal/config"
	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/internal/logging"
	"github.com/mthorborn/skel/internal/ui"
)

// cfgFile holds the value of the -c/--config flag.
var cfgFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// assumeYes holds the value of the -y/--yes flag.
var assumeYes bool

// rootCfg and configLoadErr hold the result of config loading.
var (
	rootCfg       *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/skel/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"assume yes for all prompts")

	// Add version flag
	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("skel version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	rootCfg, configLoadErr = config.Load(cfgFile)
}

var rootCmd = &cobra.Command{
	Use:   "skel",
	Short: "Declarative home directory scaffolding",
	Long: `skel creates and maintains a home directory skeleton from a single
YAML config: the directories to lay out, the locations an application
expects, and the dotfiles to manage.

Every managed file is written through the same protocol: the home
marker is expanded, missing parent directories are created, an
existing file is backed up beside itself, and the configured
permissions are applied. Timestamped backups make any overwrite
reversible.`,
	Example: `  # Write a starter config
  skel init

  # Preview what would change, then apply it
  skel apply --dry-run
  skel apply

  # Inspect managed paths and their backups
  skel status
  skel backups ~/.config/myapp/config.yaml

  See Also: skel init, skel apply, skel status`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoad(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("cannot use --quiet and --verbose together"),
			"Pass at most one of -q and -v",
		)
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("SKEL_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(logging.Combine(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfigLoad surfaces config load failures before a command runs.
// Commands that work without a config (or exist to repair one) skip it.
func checkConfigLoad(cmd *cobra.Command) error {
	if skipsConfigCheck(cmd) {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

func skipsConfigCheck(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "init", "completion", cobra.ShellCompRequestCmd:
		return true
	}
	if p := cmd.Parent(); p != nil && p.Name() == "completion" {
		return true
	}
	return false
}

// newUI builds the terminal UI for a command run. Prompts are disabled
// with --yes or when stdin is not a terminal.
func newUI() *ui.UI {
	u := ui.New()
	u.SetNonInteractive(assumeYes || !logging.IsTTY(os.Stdin))
	return u
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}

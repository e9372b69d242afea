// Package cli wires the commands of the neurondemo binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"neurondemo/internal/catalog"
	"neurondemo/internal/config"
	"neurondemo/internal/log"
	"neurondemo/internal/theme"
	"neurondemo/internal/tui"
)

// BuildInfo is stamped by the linker
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Theme      string

	// Config is loaded before any command runs
	Config config.Config
}

// NewRootCommand creates the root command. Without a subcommand it opens
// the interactive demo terminal.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "neurondemo [category[/subcategory]]",
		Short: "NeuronDB demo terminal",
		Long: `Replays scripted NeuronDB sessions in a simulated terminal: commands are
typed character by character, output is revealed line by line.

Examples:
  neurondemo
  neurondemo vectors/search
  neurondemo play ml --speed 3
  neurondemo list`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd.Context(), opts, args, info)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/neurondemo/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "", "color theme (midnight|telix)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))

	return cmd
}

// load reads the config and applies the global flags over it
func (o *RootOptions) load() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.Theme != "" {
		cfg.UI.Theme = o.Theme
	}
	if err := theme.GetThemeManager().SetTheme(cfg.UI.Theme); err != nil {
		return WrapExitError(ExitCommandError, "invalid theme", err)
	}
	o.Config = cfg

	log.Configure(log.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	return nil
}

// openCatalog returns the SQLite catalog when one is configured and exists,
// then the YAML override directory, then the built-in scripts.
func openCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Store != "" {
		if _, err := os.Stat(cfg.Catalog.Store); err == nil {
			store, err := catalog.OpenStore(ctx, cfg.Catalog.Store)
			if err != nil {
				return nil, err
			}
			defer store.Close()
			log.Debug("catalog loaded from store", "path", cfg.Catalog.Store)
			return store.Load(ctx)
		}
		log.Warn("catalog store missing, falling back", "path", cfg.Catalog.Store)
	}
	if cfg.Catalog.Dir != "" {
		log.Debug("catalog loaded from directory", "dir", cfg.Catalog.Dir)
		return catalog.LoadDir(cfg.Catalog.Dir)
	}
	return catalog.Builtin()
}

// demoKey picks the demo named on the command line, the configured default
// or the first category.
func demoKey(cat *catalog.Catalog, cfg config.Config, args []string) (catalog.Key, error) {
	name := cfg.Catalog.Default
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return cat.DefaultKey(), nil
	}
	key, err := catalog.ParseKey(name)
	if err != nil {
		return catalog.Key{}, err
	}
	return cat.Resolve(key)
}

func runTerminal(ctx context.Context, opts *RootOptions, args []string, info BuildInfo) error {
	if !isTerminal(os.Stdout) {
		return WrapExitError(ExitCommandError,
			"the demo terminal needs a TTY; use 'neurondemo play' for headless output", nil)
	}
	cat, err := openCatalog(ctx, opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	key, err := demoKey(cat, opts.Config, args)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown demo", err)
	}

	// the terminal owns stderr while it runs
	if opts.Config.Logging.File == "" {
		log.Configure(log.Options{
			Level:      opts.Config.Logging.Level,
			File:       "neurondemo_debug.log",
			MaxSizeMB:  opts.Config.Logging.MaxSizeMB,
			MaxBackups: opts.Config.Logging.MaxBackups,
		})
	}

	app := tui.NewApplication(tui.Options{
		Catalog:       cat,
		Initial:       key,
		Timings:       opts.Config.Timings(),
		Speed:         opts.Config.Speed(),
		CursorBlink:   opts.Config.UI.CursorBlink,
		TranscriptDir: opts.Config.UI.TranscriptDir,
	})
	app.SetVersionInfo(info.Version, info.Commit, info.Date)
	if err := app.Run(); err != nil {
		return WrapExitError(ExitFailure, "terminal failed", err)
	}
	return nil
}

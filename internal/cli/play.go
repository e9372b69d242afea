package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"neurondemo/internal/ansi"
	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Speed      int
	Plain      bool
	Color      bool
	Transcript string
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play [category[/subcategory]]",
		Short: "Play a demo to stdout without the terminal UI",
		Long: `Play a demo headlessly. Commands are typed and output revealed with the
same timings as the terminal UI. Colors are used when stdout is a terminal.

Examples:
  neurondemo play
  neurondemo play vectors/search --speed 3
  neurondemo play llm --plain --transcript llm.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Speed, "speed", "s", 0, "speed multiplier (1|2|3), default from config")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "never emit color")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "always emit color")
	cmd.Flags().StringVar(&opts.Transcript, "transcript", "", "write the finished transcript to this file")

	return cmd
}

func runPlay(cmd *cobra.Command, opts *PlayOptions, args []string) error {
	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer cancel()

	cat, err := openCatalog(ctx, opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	key, err := demoKey(cat, opts.Config, args)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown demo", err)
	}
	demo, err := cat.Lookup(key)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown demo", err)
	}

	speed := opts.Config.Speed()
	if opts.Speed != 0 {
		speed = playback.Speed(opts.Speed)
		if !speed.Valid() {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid speed %d", opts.Speed), playback.ErrInvalidSpeed)
		}
	}

	out := cmd.OutOrStdout()
	player := &Player{
		Out:     out,
		Timings: opts.Config.Timings(),
		Speed:   speed,
	}
	if useColor(out, opts.Plain, opts.Color) {
		player.Render = ansi.NewRenderer(theme.Current()).SGR
	}

	run, err := player.Begin(demo)
	if err != nil {
		return WrapExitError(ExitFailure, "playback failed", err)
	}
	select {
	case <-run.Done():
	case <-ctx.Done():
		run.Stop()
	}
	if err := run.Err(); err != nil {
		return WrapExitError(ExitFailure, "playback failed", err)
	}

	if opts.Transcript != "" {
		path := opts.Transcript
		if !filepath.IsAbs(path) && opts.Config.UI.TranscriptDir != "" {
			path = filepath.Join(opts.Config.UI.TranscriptDir, path)
		}
		text := ansi.PlainTranscript(run.Snapshot().History)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return WrapExitError(ExitFailure, "failed to write transcript", err)
		}
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return WrapExitError(ExitFailure, "interrupted", ctx.Err())
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// useColor reports whether output lines get SGR colors
func useColor(w any, plain, force bool) bool {
	if plain {
		return false
	}
	if force {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"neurondemo/internal/catalog"
	"neurondemo/internal/log"
	"neurondemo/internal/playback"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Output      string
	Name        string
	Title       string
	Order       int
	Description string
	Badges      []string
	StartLine   int
	EndLine     int
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <transcript>",
		Short: "Turn a recorded terminal transcript into a demo script",
		Long: `Read a transcript ("$ command" or "neurondb=# command" lines followed by
output) and write a catalog category YAML file. Escape sequences other than
the green, yellow and cyan color markers are removed. Use "-" for stdin.

Examples:
  neurondemo convert session.txt --name search --order 9 -o scripts/09_search.yaml
  neurondemo play vectors --plain --transcript v.txt && neurondemo convert v.txt --name copy`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output YAML file (prints to stdout if not specified)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "category name (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "category title (default derived from name)")
	cmd.Flags().IntVar(&opts.Order, "order", 100, "tab position")
	cmd.Flags().StringVar(&opts.Description, "desc", "", "description shown in the welcome message")
	cmd.Flags().StringSliceVar(&opts.Badges, "badge", nil, "feature badge, repeatable")
	cmd.Flags().IntVar(&opts.StartLine, "start-line", 1, "starting line number (1-based)")
	cmd.Flags().IntVar(&opts.EndLine, "end-line", -1, "ending line number (1-based, -1 for end of file)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, input string) error {
	var r io.Reader
	if input == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(input)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open transcript", err)
		}
		defer f.Close()
		r = f
	}

	steps, err := catalog.ParseTranscript(r, catalog.TranscriptRange{Start: opts.StartLine, End: opts.EndLine})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to parse transcript", err)
	}

	data, err := convertedCategory(opts, steps)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build category", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return WrapExitError(ExitFailure, "failed to write script", err)
	}
	log.Info("transcript converted", "input", input, "output", opts.Output, "steps", len(steps))
	fmt.Fprintf(cmd.ErrOrStderr(), "Generated demo script: %s (%d steps)\n", opts.Output, len(steps))
	return nil
}

func convertedCategory(opts *ConvertOptions, steps []playback.Step) ([]byte, error) {
	name := strings.TrimSpace(opts.Name)
	title := opts.Title
	if title == "" {
		title = catalog.Title(name)
	}
	cat := catalog.Category{
		Name:  name,
		Title: title,
		Order: opts.Order,
		Demos: []catalog.Demo{{
			Key:         catalog.Key{Category: name},
			Title:       title,
			Label:       title,
			Description: opts.Description,
			Badges:      opts.Badges,
			Script:      playback.Script{Name: name, Steps: steps},
		}},
	}
	// same checks the loader applies
	if _, err := catalog.New([]catalog.Category{cat}); err != nil {
		return nil, err
	}
	return catalog.MarshalCategory(cat)
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"neurondemo/internal/catalog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	KeysOnly bool
	Long     bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the demo categories and subcategories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(commandContext(cmd), opts.Config)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load catalog", err)
			}
			if opts.KeysOnly {
				for _, key := range cat.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			}
			return writeListing(cmd.OutOrStdout(), cat, opts.Long)
		},
	}

	cmd.Flags().BoolVar(&opts.KeysOnly, "keys", false, "print demo keys only")
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "include descriptions and badges")

	return cmd
}

func writeListing(out io.Writer, cat *catalog.Catalog, long bool) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tSTEPS")
	for _, c := range cat.Categories() {
		for _, d := range c.Demos {
			key := d.Key.String()
			if !c.Flat() && d.Key.Subcategory == c.Default {
				key += " *"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\n", key, d.Title, d.Script.Len())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !long {
		return nil
	}

	for _, c := range cat.Categories() {
		for _, d := range c.Demos {
			fmt.Fprintf(out, "\n%s\n", d.Title)
			if d.Description != "" {
				fmt.Fprintln(out, indent(d.Description, "  "))
			}
			if len(d.Badges) > 0 {
				fmt.Fprintln(out, indent(strings.Join(d.Badges, "  "), "  "))
			}
		}
	}
	return nil
}

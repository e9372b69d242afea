package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"neurondemo/internal/catalog"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import YAML demo scripts into a SQLite catalog",
		Long: `Replace the contents of a SQLite catalog with the YAML scripts in dir, or
with the built-in scripts when dir is omitted.

Examples:
  neurondemo import --db demos.db
  neurondemo import ./scripts --db demos.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite catalog path (default catalog.store from config)")

	return cmd
}

func runImport(cmd *cobra.Command, opts *ImportOptions, args []string) error {
	ctx := commandContext(cmd)

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.Config.Catalog.Store
	}
	if dbPath == "" {
		return WrapExitError(ExitCommandError, "no catalog database", fmt.Errorf("pass --db or set catalog.store"))
	}

	source := "builtin"
	var (
		cat *catalog.Catalog
		err error
	)
	if len(args) > 0 {
		source = args[0]
		cat, err = catalog.LoadDir(source)
	} else {
		cat, err = catalog.Builtin()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read scripts", err)
	}

	store, err := catalog.OpenStore(ctx, dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer store.Close()

	id, err := store.Import(ctx, cat, source)
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories, %d demos from %s (import %s)\n",
		len(cat.Categories()), len(cat.Keys()), source, id)
	return nil
}

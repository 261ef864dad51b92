package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/xpathq/internal/locator"
	"github.com/roach88/xpathq/internal/store"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Database string
	History  bool
}

// CatalogEntry is one catalog revision as printed by the catalog commands.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Expression  string `json:"expression"`
	Hash        string `json:"hash"`
	Seq         int64  `json:"seq"`
	Definition  string `json:"definition,omitempty"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect recorded locator revisions",
		Long: `Inspect the catalog written by "xpq render --db".

Examples:
  xpq catalog list --db ./catalog.db
  xpq catalog show grade_table --db ./catalog.db
  xpq catalog show grade_table --history --db ./catalog.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the catalog database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCatalogListCommand(opts))
	cmd.AddCommand(newCatalogShowCommand(opts))

	return cmd
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the latest revision of every locator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}
}

func newCatalogShowCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Show the latest revision of a locator",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.History, "history", false, "show every revision, oldest first")

	return cmd
}

// openCatalog opens an existing catalog. Unlike render, the catalog
// commands never create a database.
func openCatalog(f *OutputFormatter, path string) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = f.Error(locator.ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}

	st, err := store.Open(path)
	if err != nil {
		_ = f.Error(locator.ErrCodeGeneric, fmt.Sprintf("failed to open database: %v", err), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List(cmd.Context())
	if err != nil {
		_ = formatter.Error(locator.ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing catalog", err)
	}

	entries := toEntries(records, false)
	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "Catalog is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s (seq %d): %s\n", e.Name, e.Seq, e.Expression)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var records []store.Record
	if opts.History {
		records, err = st.History(cmd.Context(), name)
		if err == nil && len(records) == 0 {
			err = fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
	} else {
		var rec store.Record
		rec, err = st.Latest(cmd.Context(), name)
		records = []store.Record{rec}
	}

	if errors.Is(err, store.ErrNotFound) {
		_ = formatter.Error(locator.ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	if err != nil {
		_ = formatter.Error(locator.ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading catalog", err)
	}

	entries := toEntries(records, true)
	if formatter.Format == "json" {
		if opts.History {
			return formatter.Success(entries)
		}
		return formatter.Success(entries[0])
	}

	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s (seq %d)\n", e.Name, e.Seq)
		if e.Description != "" {
			fmt.Fprintf(formatter.Writer, "  description: %s\n", e.Description)
		}
		fmt.Fprintf(formatter.Writer, "  expression:  %s\n", e.Expression)
		fmt.Fprintf(formatter.Writer, "  hash:        %s\n", e.Hash)
		fmt.Fprintf(formatter.Writer, "  id:          %s\n", e.ID)
	}
	return nil
}

func toEntries(records []store.Record, withDefinition bool) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(records))
	for _, r := range records {
		e := CatalogEntry{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Expression:  r.Expression,
			Hash:        r.Hash,
			Seq:         r.Seq,
		}
		if withDefinition {
			e.Definition = r.Definition
		}
		entries = append(entries, e)
	}
	return entries
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/xpathq/internal/locator"
	"github.com/roach88/xpathq/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Database string // catalog to record revisions in
	Output   string // output file path
	Strict   bool   // reject dangling operators and unquotable literals
}

// RenderedLocator is one rendered definition.
type RenderedLocator struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Expression  string `json:"expression"`
	Hash        string `json:"hash"`
	Pending     bool   `json:"pending,omitempty"`
	Seq         int64  `json:"seq,omitempty"`
}

// RenderResult holds every rendered locator.
type RenderResult struct {
	Locators []RenderedLocator `json:"locators"`
	Saved    int               `json:"saved"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <definitions-dir> [name...]",
		Short: "Render locator definitions to XPath",
		Long: `Render CUE locator definitions to XPath 1.0 expressions.

Without names every definition is rendered. With --db each rendered
locator is recorded in the catalog; unchanged definitions are skipped.

Examples:
  xpq render ./locators
  xpq render ./locators grade_table last_row
  xpq render ./locators --strict --db ./catalog.db
  xpq render ./locators --format json -o locators.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record rendered locators in this catalog database")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on dangling operators and unquotable literals")

	return cmd
}

func runRender(opts *RenderOptions, dir string, names []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	loaded, errs, err := loadDefinitions(formatter, dir)
	if err != nil {
		return err
	}

	defs, missing := selectDefinitions(loaded, names)
	errs = append(errs, missing...)

	result := &RenderResult{Locators: make([]RenderedLocator, 0, len(defs))}
	for _, def := range defs {
		formatter.VerboseLog("Rendering locator: %s", def.Name)

		c, err := locator.Compile(def)
		if err != nil {
			errs = append(errs, toCLIError(err, def.Name))
			continue
		}
		if opts.Strict {
			if _, err := c.Strict(); err != nil {
				errs = append(errs, toCLIError(err, def.Name))
				continue
			}
		} else if c.Pending() {
			logger.Warn("rendered with a dangling operator", "locator", def.Name, "expression", c.Expression)
		}

		result.Locators = append(result.Locators, RenderedLocator{
			Name:        def.Name,
			Description: def.Description,
			Expression:  c.Expression,
			Hash:        c.Hash,
			Pending:     c.Pending(),
		})
	}

	if len(errs) > 0 {
		if err := formatter.Errors("Rendering failed", errs, nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("rendering failed with %d error(s)", len(errs)))
	}

	if opts.Database != "" {
		if err := saveRendered(cmd.Context(), opts.Database, defs, result, logger); err != nil {
			_ = formatter.Error(locator.ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "recording catalog", err)
		}
	}

	if opts.Output != "" {
		if err := writeJSONFile(result, opts.Output); err != nil {
			_ = formatter.Error(locator.ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, l := range result.Locators {
		fmt.Fprintf(formatter.Writer, "%s: %s\n", l.Name, l.Expression)
	}
	if opts.Database != "" {
		fmt.Fprintf(formatter.Writer, "\nRecorded %d new revision(s) in %s\n", result.Saved, opts.Database)
	}
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %d locator(s) to %s\n", len(result.Locators), opts.Output)
	}
	return nil
}

// selectDefinitions returns the named definitions in argument order, or all
// of them when names is empty.
func selectDefinitions(loaded *locator.LoadResult, names []string) ([]locator.Definition, []CLIError) {
	if len(names) == 0 {
		return loaded.Definitions, nil
	}

	var defs []locator.Definition
	var missing []CLIError
	for _, name := range names {
		def, ok := loaded.Lookup(name)
		if !ok {
			missing = append(missing, CLIError{
				Code:    locator.ErrCodeNotFound,
				Message: "locator not defined",
				Locator: name,
			})
			continue
		}
		defs = append(defs, def)
	}
	return defs, missing
}

// saveRendered records every rendered locator in the catalog at path.
// defs and result.Locators are parallel.
func saveRendered(ctx context.Context, path string, defs []locator.Definition, result *RenderResult, logger *slog.Logger) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	for i := range result.Locators {
		l := &result.Locators[i]
		canonical, err := defs[i].Canonical()
		if err != nil {
			return fmt.Errorf("%s: %w", l.Name, err)
		}

		rec, created, err := st.Save(ctx, store.Record{
			Name:        l.Name,
			Description: l.Description,
			Expression:  l.Expression,
			Hash:        l.Hash,
			Definition:  string(canonical),
		})
		if err != nil {
			return err
		}
		l.Seq = rec.Seq
		if created {
			result.Saved++
			logger.Info("locator revision recorded", "locator", l.Name, "seq", rec.Seq, "id", rec.ID)
		} else {
			logger.Debug("locator unchanged", "locator", l.Name, "seq", rec.Seq)
		}
	}
	return nil
}

// writeJSONFile writes v as indented JSON.
func writeJSONFile(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

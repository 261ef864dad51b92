package cli

import (
	"fmt"

	antchfx "github.com/antchfx/xpath"
	"github.com/spf13/cobra"

	"github.com/roach88/xpathq/internal/locator"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool       `json:"valid"`
	Locators int        `json:"locators"`
	Errors   []CLIError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <definitions-dir>",
		Short: "Validate locator definitions",
		Long: `Validate CUE locator definitions without writing anything.

Every definition is compiled and its expression is parsed by an
independent XPath 1.0 parser. All errors are reported, not just the
first. With --strict, dangling [and,or] operators and literals that
XPath 1.0 cannot quote are reported with their own codes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "report dangling operators and unquotable literals as builder errors")

	return cmd
}

func runValidate(opts *ValidateOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	loaded, issues, err := loadDefinitions(formatter, dir)
	if err != nil {
		return err
	}

	for _, def := range loaded.Definitions {
		formatter.VerboseLog("Validating locator: %s", def.Name)
		if issue, ok := validateDefinition(def, opts.Strict); !ok {
			issues = append(issues, issue)
		}
	}

	if len(issues) > 0 {
		result := ValidationResult{Valid: false, Locators: len(loaded.Definitions), Errors: issues}
		if err := formatter.Errors("Validation failed", issues, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Locators: len(loaded.Definitions)})
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d locator(s) valid\n", len(loaded.Definitions))
	return nil
}

// validateDefinition compiles def and checks the result parses as XPath.
func validateDefinition(def locator.Definition, strict bool) (CLIError, bool) {
	c, err := locator.Compile(def)
	if err != nil {
		return toCLIError(err, def.Name), false
	}
	if strict {
		if _, err := c.Strict(); err != nil {
			return toCLIError(err, def.Name), false
		}
	}
	if _, err := antchfx.Compile(c.Expression); err != nil {
		return CLIError{
			Code:     locator.ErrCodeSyntax,
			Message:  fmt.Sprintf("%s is not valid XPath: %v", c.Expression, err),
			Locator:  def.Name,
			Position: position(def.Pos),
		}, false
	}
	return CLIError{}, true
}

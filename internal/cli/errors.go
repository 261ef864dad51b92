package cli

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"

	"github.com/roach88/xpathq/internal/locator"
	"github.com/roach88/xpathq/internal/xpath"
)

// toCLIError converts a load, compile or builder error into a CLIError.
func toCLIError(err error, name string) CLIError {
	var loadErr *locator.LoadError
	var compileErr *locator.CompileError
	if errors.As(err, &loadErr) || errors.As(err, &compileErr) {
		le := locator.ConvertError(err, name)
		return CLIError{Code: le.Code, Message: le.Message, Locator: name, Position: position(le.Pos)}
	}

	switch {
	case xpath.IsInvalidState(err):
		return CLIError{Code: locator.ErrCodeInvalidState, Message: err.Error(), Locator: name}
	case errors.Is(err, xpath.ErrUnsupportedLiteral):
		return CLIError{Code: locator.ErrCodeUnsupportedLiteral, Message: err.Error(), Locator: name}
	default:
		return CLIError{Code: locator.ErrCodeGeneric, Message: err.Error(), Locator: name}
	}
}

func position(pos token.Pos) string {
	if !pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename(), pos.Line(), pos.Column())
}

// loadDefinitions loads dir in collect-all mode. A directory that cannot be
// loaded at all is reported through f and returned as an ExitError.
func loadDefinitions(f *OutputFormatter, dir string) (*locator.LoadResult, []CLIError, error) {
	result, errs := locator.LoadDir(dir, locator.LoadModeCollectAll)
	if result == nil {
		cliErr := toCLIError(errs[0], "")
		_ = f.Error(cliErr.Code, cliErr.Message, nil)
		return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", cliErr.Code, cliErr.Message))
	}

	f.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, dir)

	var cliErrs []CLIError
	for _, err := range errs {
		cliErrs = append(cliErrs, toCLIError(err, ""))
	}
	return result, cliErrs, nil
}

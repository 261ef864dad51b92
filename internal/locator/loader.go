package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the definitions loaded from a directory, sorted by name.
type LoadResult struct {
	Definitions []Definition
	FileCount   int
}

// Lookup returns the definition named name.
func (r *LoadResult) Lookup(name string) (Definition, bool) {
	for _, d := range r.Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// LoadError represents an error that occurred during loading or compiling.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Error codes shared by every command.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path or locator not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File or catalog write error

	// Definition errors
	ErrCodeName         = "E101" // Missing name
	ErrCodeUnknownOp    = "E102" // Unknown or missing op
	ErrCodeMissingArg   = "E103" // Required argument missing
	ErrCodeInvalidType  = "E104" // Argument has the wrong type
	ErrCodeUnknownField = "E105" // Unknown field
	ErrCodeInvalidAxis  = "E106" // Unknown axis
	ErrCodeInvalidIndex = "E107" // Negative index

	// Builder errors
	ErrCodeInvalidState       = "E201" // Dangling [and,or] operator
	ErrCodeUnsupportedLiteral = "E202" // Literal with both quote kinds
	ErrCodeSyntax             = "E203" // Rendered expression is not valid XPath
)

// MapFieldToErrorCode maps a CompileError field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case FieldName:
		return ErrCodeName
	case FieldOp:
		return ErrCodeUnknownOp
	case FieldArgs:
		return ErrCodeMissingArg
	case FieldType:
		return ErrCodeInvalidType
	case FieldUnknown:
		return ErrCodeUnknownField
	case FieldAxis:
		return ErrCodeInvalidAxis
	case FieldIndex:
		return ErrCodeInvalidIndex
	case FieldState:
		return ErrCodeInvalidState
	case FieldLiteral:
		return ErrCodeUnsupportedLiteral
	case FieldCUE:
		return ErrCodeBuildFailed
	default:
		return ErrCodeGeneric
	}
}

// ConvertError converts a compile error into a LoadError with position info.
func ConvertError(err error, context string) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		msg := compileErr.Message
		if compileErr.Path != "" {
			msg = compileErr.Path + ": " + msg
		}
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: msg,
			Pos:     compileErr.Pos,
			Err:     err,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
		Err:     err,
	}
}

// LoadDir loads every definition under the top-level locator field of the
// CUE package in dir.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDir(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err), Err: inst.Err}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err), Err: err}}
	}

	result := &LoadResult{FileCount: len(cueFiles)}
	errs := collect(value, mode, result)

	if len(result.Definitions) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no locators found in definitions"})
	}

	sort.Slice(result.Definitions, func(i, j int) bool {
		return result.Definitions[i].Name < result.Definitions[j].Name
	})
	return result, errs
}

// LoadValue extracts definitions from an already built CUE value.
func LoadValue(value cue.Value, mode LoadMode) (*LoadResult, []error) {
	result := &LoadResult{}
	errs := collect(value, mode, result)
	sort.Slice(result.Definitions, func(i, j int) bool {
		return result.Definitions[i].Name < result.Definitions[j].Name
	})
	return result, errs
}

func collect(value cue.Value, mode LoadMode, result *LoadResult) []error {
	var errs []error

	locators := value.LookupPath(cue.ParsePath("locator"))
	if !locators.Exists() {
		return nil
	}

	iter, err := locators.Fields()
	if err != nil {
		return []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating locators: %v", err), Err: err}}
	}

	for iter.Next() {
		def, err := CompileCUE(iter.Value())
		if err != nil {
			errs = append(errs, ConvertError(err, "locator."+iter.Label()))
			if mode == LoadModeFailFast {
				return errs
			}
			continue
		}
		result.Definitions = append(result.Definitions, *def)
	}
	return errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

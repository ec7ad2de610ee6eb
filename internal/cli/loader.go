package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"cuelang.org/go/cue/token"

	"github.com/roach88/connective/internal/compiler"
	"github.com/roach88/connective/internal/ir"
)

// LoadError represents an error that occurred while loading experiments.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadExperiments loads the presets plus every .cue file in dir and
// converts all errors to LoadErrors. An empty dir loads the presets alone.
func LoadExperiments(dir string) (*compiler.LoadResult, []error) {
	result, errs := compiler.LoadDir(dir)
	if len(errs) == 0 {
		return result, nil
	}
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = convertLoadError(err)
	}
	return result, out
}

// loadExperiment resolves one experiment by name. Any load error is fatal.
func loadExperiment(dir, name string) (ir.Experiment, error) {
	result, errs := LoadExperiments(dir)
	if len(errs) > 0 {
		return ir.Experiment{}, errs[0]
	}
	exp, err := result.Registry.Experiment(name)
	if err != nil {
		return ir.Experiment{}, convertLoadError(err)
	}
	return exp, nil
}

// convertLoadError converts a compiler error to a LoadError with position
// info. Compile errors keep their E2xx code.
func convertLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}

	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		code := compileErr.Code
		if code == compiler.ErrCUE && (compileErr.Field == "load" || compileErr.Field == "build") {
			code = ErrCodeLoadFailed
		}
		msg := compileErr.Message
		if compileErr.Field != "" {
			msg = compileErr.Field + ": " + msg
		}
		return &LoadError{Code: code, Message: msg, Pos: compileErr.Pos}
	}

	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Code: ErrCodeNotFound, Message: err.Error()}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// loadErrorCode returns the code of err if it is a LoadError.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

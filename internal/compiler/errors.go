package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Compile error codes (E200-E299).
const (
	// Generic CUE errors: type mismatch, conflicting values, syntax (E200).
	ErrCUE = "E200"

	// Catalog errors (E201-E209)
	ErrMalformedWord     = "E201" // word is not a 4-component 0/1 vector or a known name
	ErrDuplicateWord     = "E202" // word appears twice in a catalog
	ErrEmptyCatalog      = "E203" // catalog has no words or is missing
	ErrUnknownCatalogRef = "E204" // experiment names a catalog that does not exist

	// Weight table errors (E211-E219)
	ErrMissingCost       = "E211" // catalog word has no cost
	ErrNegativeCost      = "E212" // cost below zero
	ErrUnknownWeightsRef = "E213" // experiment names a weight table that does not exist
	ErrMalformedCostKey  = "E214" // weight table key is not a word

	// Utility errors (E221-E229)
	ErrUtilityShape      = "E221" // not a 4x4 matrix of rationals
	ErrUtilityRange      = "E222" // entry outside [0,1]
	ErrUnknownUtilityRef = "E223" // experiment names a utility that does not exist

	// Experiment errors (E231-E239)
	ErrInvalidNormalization = "E231" // normalization is not uniform or none
	ErrUnknownExperiment    = "E232" // no experiment with the requested name
)

// CompileError is a configuration error with its CUE source position.
type CompileError struct {
	// Field is the CUE path of the offending value, e.g.
	// "experiment.default.weights".
	Field string

	Message string
	Code    string
	Pos     token.Pos

	// Err is the underlying domain error, if any.
	Err error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: [%s] %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Unwrap returns the underlying domain error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(field string, err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Field: field, Message: err.Error(), Code: ErrCUE, Err: err}
	}

	// Return first error with position info
	first := errs[0]
	ce := &CompileError{Field: field, Message: first.Error(), Code: ErrCUE, Err: err}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}

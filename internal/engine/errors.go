package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/connective/internal/ir"
)

// RunError reports a fatal error raised while scoring one language of a run.
//
// The wrapped error is an *ir.Error for configuration defects
// (UnknownConnective, DegenerateWord, InvalidCatalog) or a context error when
// the run was cancelled.
type RunError struct {
	// Index is the position of the language in enumeration order.
	Index int

	// Language is the language being scored.
	Language ir.Language

	// Names are the display names of the language's words, when known.
	Names []string

	// Stage names the step that failed: "complexity" or "informativeness".
	Stage string

	Err error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	lang := e.Language.String()
	if len(e.Names) > 0 {
		lang += " (" + strings.Join(e.Names, ", ") + ")"
	}
	if e.Stage != "" {
		return fmt.Sprintf("language %d %s: %s: %v", e.Index, lang, e.Stage, e.Err)
	}
	return fmt.Sprintf("language %d %s: %v", e.Index, lang, e.Err)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsRunError returns true if err is a RunError.
// Uses errors.As to handle wrapped errors.
func IsRunError(err error) bool {
	var re *RunError
	return errors.As(err, &re)
}

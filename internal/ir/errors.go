package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes configuration defects detected while scoring.
//
// All kinds are fatal for the run that raises them: the computation is
// deterministic, so re-running with the same configuration fails the same way.
type ErrorKind string

const (
	// KindUnknownConnective indicates a word with no name or no cost entry.
	KindUnknownConnective ErrorKind = "UNKNOWN_CONNECTIVE"

	// KindDegenerateWord indicates a word with no true world reached the
	// informativeness accumulation.
	KindDegenerateWord ErrorKind = "DEGENERATE_WORD"

	// KindInvalidCatalog indicates duplicate words or a malformed truth vector.
	KindInvalidCatalog ErrorKind = "INVALID_CATALOG"
)

// Error is a domain error carrying the offending word and language.
type Error struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Message is a human-readable description.
	Message string

	// Word is the offending word, valid when HasWord is set.
	Word    Word
	HasWord bool

	// Language is the language being processed, if any.
	Language Language
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.HasWord {
		msg += fmt.Sprintf(" (word=%s)", e.Word)
	}
	if len(e.Language) > 0 {
		msg += fmt.Sprintf(" (language=%s)", e.Language)
	}
	return msg
}

// NewUnknownConnectiveError reports a word missing from a lookup table.
func NewUnknownConnectiveError(w Word, table string) *Error {
	return &Error{
		Kind:    KindUnknownConnective,
		Message: fmt.Sprintf("connective not present in %s", table),
		Word:    w,
		HasWord: true,
	}
}

// NewDegenerateWordError reports a word true at no world.
func NewDegenerateWordError(w Word, lang Language) *Error {
	return &Error{
		Kind:     KindDegenerateWord,
		Message:  "word has no true world",
		Word:     w,
		HasWord:  true,
		Language: lang,
	}
}

// NewInvalidCatalogError reports a malformed catalog or language.
func NewInvalidCatalogError(message string) *Error {
	return &Error{Kind: KindInvalidCatalog, Message: message}
}

// WithLanguage returns a copy of the error annotated with the language.
func (e *Error) WithLanguage(lang Language) *Error {
	c := *e
	c.Language = lang
	return &c
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsUnknownConnective returns true if err is an unknown connective error.
// Uses errors.As to handle wrapped errors.
func IsUnknownConnective(err error) bool {
	return isKind(err, KindUnknownConnective)
}

// IsDegenerateWord returns true if err is a degenerate word error.
func IsDegenerateWord(err error) bool {
	return isKind(err, KindDegenerateWord)
}

// IsInvalidCatalog returns true if err is an invalid catalog error.
func IsInvalidCatalog(err error) bool {
	return isKind(err, KindInvalidCatalog)
}

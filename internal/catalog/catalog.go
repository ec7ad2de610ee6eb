// Package catalog holds the sixteen truth functions of two Boolean variables
// and their display names.
package catalog

import (
	"fmt"
	"strings"

	"github.com/roach88/connective/internal/ir"
)

// The sixteen connectives, named by their truth vectors over
// (p∧q, p∧¬q, ¬p∧q, ¬p∧¬q).
const (
	TAU   ir.Word = 0b1111 // tautology
	OR    ir.Word = 0b1110
	IF    ir.Word = 0b1101 // p ← q
	P     ir.Word = 0b1100
	THEN  ir.Word = 0b1011 // p → q
	Q     ir.Word = 0b1010
	IFF   ir.Word = 0b1001
	AND   ir.Word = 0b1000
	NAND  ir.Word = 0b0111
	XOR   ir.Word = 0b0110
	NOTQ  ir.Word = 0b0101
	ONLYP ir.Word = 0b0100 // p ∧ ¬q
	NOTP  ir.Word = 0b0011
	ONLYQ ir.Word = 0b0010 // ¬p ∧ q
	NOR   ir.Word = 0b0001
	CONT  ir.Word = 0b0000 // contradiction
)

// all is the canonical catalog order.
var all = [16]ir.Word{TAU, OR, IF, P, THEN, Q, IFF, AND, NAND, XOR, NOTQ, ONLYP, NOTP, ONLYQ, NOR, CONT}

var names = map[ir.Word]string{
	TAU:   "TAU",
	OR:    "OR",
	IF:    "<-",
	P:     "P",
	THEN:  "->",
	Q:     "Q",
	IFF:   "<->",
	AND:   "AND",
	NAND:  "NAND",
	XOR:   "XOR",
	NOTQ:  "NOTQ",
	ONLYP: "ONLYP",
	NOTP:  "NOTP",
	ONLYQ: "ONLYQ",
	NOR:   "NOR",
	CONT:  "CONT",
}

// byName is the reverse of names, keyed by upper-case name.
var byName = func() map[string]ir.Word {
	m := make(map[string]ir.Word, len(names))
	for w, n := range names {
		m[strings.ToUpper(n)] = w
	}
	return m
}()

// All returns the sixteen connectives in canonical order.
func All() []ir.Word {
	out := make([]ir.Word, len(all))
	copy(out, all[:])
	return out
}

// Name returns the display name of w.
// Returns an UnknownConnective error for a word outside the sixteen.
func Name(w ir.Word) (string, error) {
	n, ok := names[w]
	if !ok {
		return "", ir.NewUnknownConnectiveError(w, "connective naming table")
	}
	return n, nil
}

// Names returns the display names of a language, positionally.
func Names(l ir.Language) ([]string, error) {
	out := make([]string, len(l))
	for i, w := range l {
		n, err := Name(w)
		if err != nil {
			return nil, err.(*ir.Error).WithLanguage(l)
		}
		out[i] = n
	}
	return out, nil
}

// Lookup resolves a display name (case-insensitive) or a bit string such as
// "1110" to a word.
func Lookup(s string) (ir.Word, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if w, ok := byName[key]; ok {
		return w, nil
	}
	if strings.Trim(key, "01") == "" && key != "" {
		return ir.ParseWord(key)
	}
	return 0, &ir.Error{Kind: ir.KindUnknownConnective, Message: fmt.Sprintf("no connective named %q", s)}
}

// ParseLanguage resolves names or bit strings to a duplicate-free language.
func ParseLanguage(items []string) (ir.Language, error) {
	lang := make(ir.Language, 0, len(items))
	for _, item := range items {
		w, err := Lookup(item)
		if err != nil {
			return nil, err
		}
		lang = append(lang, w)
	}
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return lang, nil
}

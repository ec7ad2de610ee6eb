package engine

import (
	"github.com/roach88/connective/internal/ir"
)

// exhKey identifies one exhaustification problem: a prejacent and its
// ordered alternatives, packed four bits per word.
type exhKey struct {
	prejacent ir.Word
	n         uint8
	seq       uint64
}

func newExhKey(w ir.Word, alts []ir.Word) exhKey {
	k := exhKey{prejacent: w, n: uint8(len(alts))}
	for _, a := range alts {
		k.seq = k.seq<<ir.Worlds | uint64(a)
	}
	return k
}

// ExhaustifierStats reports cache behaviour.
type ExhaustifierStats struct {
	Hits   int
	Misses int
}

// Exhaustifier is a memoising implicature engine.
//
// The excludable set depends only on the prejacent and the ordered list of
// its alternatives, and the same pair recurs across many languages of a run.
// An Exhaustifier is not safe for concurrent use.
type Exhaustifier struct {
	cache map[exhKey]uint32
	stats ExhaustifierStats
}

// NewExhaustifier creates an empty Exhaustifier.
func NewExhaustifier() *Exhaustifier {
	return &Exhaustifier{cache: make(map[exhKey]uint32)}
}

func (e *Exhaustifier) mask(w ir.Word, alts []ir.Word) uint32 {
	k := newExhKey(w, alts)
	if m, ok := e.cache[k]; ok {
		e.stats.Hits++
		return m
	}
	e.stats.Misses++
	m := excludableMask(w, alts)
	e.cache[k] = m
	return m
}

// Excludable is the memoised form of the package-level Excludable.
func (e *Exhaustifier) Excludable(w ir.Word, l ir.Language) ir.Language {
	alts := Alternatives(w, l)
	return selectMask(alts, e.mask(w, alts))
}

// Strengthen is the memoised form of the package-level Strengthen.
func (e *Exhaustifier) Strengthen(w ir.Word, l ir.Language) ir.Word {
	alts := Alternatives(w, l)
	return w &^ unionOf(alts, e.mask(w, alts))
}

// StrengthenLanguage is the memoised form of the package-level
// StrengthenLanguage.
func (e *Exhaustifier) StrengthenLanguage(l ir.Language) ir.Language {
	out := make(ir.Language, len(l))
	for i, w := range l {
		out[i] = e.Strengthen(w, l)
	}
	return out
}

// Stats returns cache hit and miss counts.
func (e *Exhaustifier) Stats() ExhaustifierStats {
	return e.stats
}

// Len returns the number of cached problems.
func (e *Exhaustifier) Len() int {
	return len(e.cache)
}

// Explanation traces the exhaustification of one word.
type Explanation struct {
	Prejacent    ir.Word
	Alternatives ir.Language

	// Candidates is the number of non-empty subsets of the alternatives.
	Candidates int

	// Admissible counts the candidates consistent with the prejacent.
	Admissible int

	// Retained lists the sets left by the maximality pass, in order.
	// The same set may appear more than once.
	Retained []ir.Language

	Excludable   ir.Language
	Strengthened ir.Word
}

// Explain exhaustifies w in l and records every intermediate step.
func Explain(w ir.Word, l ir.Language) Explanation {
	alts := Alternatives(w, l)
	ex := Explanation{
		Prejacent:    w,
		Alternatives: alts,
		Candidates:   LanguageCount(len(alts)),
	}

	var retained []uint32
	ForEachSubset(len(alts), func(c uint32) bool {
		if admissible(w, alts, c) {
			ex.Admissible++
			retained = replayMaximality(retained, c)
		}
		return true
	})

	var mask uint32
	for i, s := range retained {
		ex.Retained = append(ex.Retained, selectMask(alts, s))
		if i == 0 {
			mask = s
		} else {
			mask &= s
		}
	}
	ex.Excludable = selectMask(alts, mask)
	ex.Strengthened = w &^ unionOf(alts, mask)
	return ex
}

package engine

import (
	"math/bits"
	"slices"

	"github.com/roach88/connective/internal/ir"
)

// Alternatives returns the words of l that are not entailed by w: every a
// such that w is true at some world where a is false. Language order is kept.
func Alternatives(w ir.Word, l ir.Language) ir.Language {
	var out ir.Language
	for _, a := range l {
		if !w.Entails(a) {
			out = append(out, a)
		}
	}
	return out
}

// Excludable returns the innocently excludable alternatives of w in l, in
// language order. It is empty when w has no alternatives or no set of
// alternatives can be negated consistently with w.
func Excludable(w ir.Word, l ir.Language) ir.Language {
	alts := Alternatives(w, l)
	return selectMask(alts, excludableMask(w, alts))
}

// Strengthen returns the exhaustified meaning of w in l: w conjoined with the
// negation of every innocently excludable alternative.
//
// Invariant: Strengthen(w, l) entails w.
func Strengthen(w ir.Word, l ir.Language) ir.Word {
	alts := Alternatives(w, l)
	return w &^ unionOf(alts, excludableMask(w, alts))
}

// StrengthenLanguage strengthens every word of l against l itself, never
// against already-strengthened siblings. The result has the same length and
// positional correspondence.
func StrengthenLanguage(l ir.Language) ir.Language {
	out := make(ir.Language, len(l))
	for i, w := range l {
		out[i] = Strengthen(w, l)
	}
	return out
}

// excludableMask computes the innocently excludable set as a mask over alts.
//
//  1. Candidates are the non-empty subsets of alts, in ForEachSubset order.
//  2. A candidate is admissible if some world has w true and every member false.
//  3. Admissible candidates pass through replayMaximality.
//  4. The result is the intersection of the retained sets.
func excludableMask(w ir.Word, alts []ir.Word) uint32 {
	retained := maximalSets(w, alts)
	if len(retained) == 0 {
		return 0
	}
	mask := retained[0]
	for _, s := range retained[1:] {
		mask &= s
	}
	return mask
}

// maximalSets returns the retained candidate list for w over alts.
func maximalSets(w ir.Word, alts []ir.Word) []uint32 {
	var retained []uint32
	ForEachSubset(len(alts), func(c uint32) bool {
		if admissible(w, alts, c) {
			retained = replayMaximality(retained, c)
		}
		return true
	})
	return retained
}

// admissible reports whether negating every alternative in c is consistent
// with w.
func admissible(w ir.Word, alts []ir.Word, c uint32) bool {
	return w&^unionOf(alts, c) != 0
}

// replayMaximality folds candidate c into the retained list in one pass.
//
// Each retained set s is visited in order. If s is a subset of c, s is
// removed and c appended; otherwise, if c is not a subset of any retained
// set, c is appended. A single candidate may therefore be appended more than
// once. The pass visits the list as it stood when the pass began, except that
// a removal made before the first append shifts the visited list itself, so
// the element after the removed one is skipped.
//
// This reproduces the reference scripts exactly, including their order
// dependence, rather than computing a maximal antichain from scratch.
func replayMaximality(retained []uint32, c uint32) []uint32 {
	if len(retained) == 0 {
		return []uint32{c}
	}

	visit := retained
	cur := retained
	rebound := false
	for p := 0; p < len(visit); p++ {
		s := visit[p]
		switch {
		case s&^c == 0:
			if i := slices.Index(cur, s); i >= 0 {
				if rebound {
					cur = slices.Delete(cur, i, i+1)
				} else {
					visit = slices.Delete(visit, i, i+1)
					cur = visit
				}
			}
			cur = appendFresh(cur, c)
			rebound = true
		case !hasSuperset(cur, c):
			cur = appendFresh(cur, c)
			rebound = true
		}
	}
	return cur
}

// appendFresh appends c to a copy of list, never to list's backing array.
func appendFresh(list []uint32, c uint32) []uint32 {
	out := make([]uint32, len(list), len(list)+1)
	copy(out, list)
	return append(out, c)
}

// hasSuperset reports whether c is a subset of some set in list.
func hasSuperset(list []uint32, c uint32) bool {
	for _, s := range list {
		if c&^s == 0 {
			return true
		}
	}
	return false
}

// unionOf returns the pointwise disjunction of the words selected by mask.
func unionOf(words []ir.Word, mask uint32) ir.Word {
	var u ir.Word
	for i, w := range words {
		if mask&(1<<i) != 0 {
			u |= w
		}
	}
	return u
}

func popcount(mask uint32) int {
	return bits.OnesCount32(mask)
}

package ir

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// World indexes one row of the two-variable truth table.
//
//	0: p∧q   1: p∧¬q   2: ¬p∧q   3: ¬p∧¬q
type World int

// Worlds is the number of worlds. It is fixed: connectives over more than two
// variables are not supported.
const Worlds = 4

// AllWorlds lists the worlds in canonical order.
var AllWorlds = [Worlds]World{0, 1, 2, 3}

// Word is the extension of a binary connective: one truth value per world.
//
// The vector [w0, w1, w2, w3] is stored as the 4-bit number w0w1w2w3, so
// Word(0b1110) is [1,1,1,0] (OR) and Word(0b1000) is [1,0,0,0] (AND).
// Identity is by value.
type Word uint8

// wordMask covers the four truth bits.
const wordMask Word = 0b1111

// At reports whether the word is true at world w.
func (w Word) At(world World) bool {
	return w>>(Worlds-1-int(world))&1 == 1
}

// Count returns the number of worlds where the word is true.
func (w Word) Count() int {
	return bits.OnesCount8(uint8(w & wordMask))
}

// Negate flips every truth value.
func (w Word) Negate() Word {
	return ^w & wordMask
}

// And is pointwise conjunction.
func (w Word) And(o Word) Word {
	return w & o & wordMask
}

// Entails reports whether w is at least as strong as o at every world.
func (w Word) Entails(o Word) bool {
	return w&^o == 0
}

// Vector returns the truth vector as 0/1 integers.
func (w Word) Vector() [Worlds]int {
	var v [Worlds]int
	for _, world := range AllWorlds {
		if w.At(world) {
			v[world] = 1
		}
	}
	return v
}

// String renders the word as a bit string, e.g. "1110".
func (w Word) String() string {
	var b strings.Builder
	b.Grow(Worlds)
	for _, world := range AllWorlds {
		if w.At(world) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// WordFromVector builds a word from a truth vector.
// The vector must have exactly four components, each 0 or 1.
func WordFromVector(v []int) (Word, error) {
	if len(v) != Worlds {
		return 0, NewInvalidCatalogError(fmt.Sprintf("truth vector %v has %d components, want %d", v, len(v), Worlds))
	}
	var w Word
	for i, x := range v {
		switch x {
		case 0:
		case 1:
			w |= 1 << (Worlds - 1 - i)
		default:
			return 0, NewInvalidCatalogError(fmt.Sprintf("truth vector %v has component %d at world %d, want 0 or 1", v, x, i))
		}
	}
	return w, nil
}

// ParseWord parses a bit string such as "1110".
func ParseWord(s string) (Word, error) {
	s = strings.TrimSpace(s)
	v := make([]int, 0, len(s))
	for _, r := range s {
		switch r {
		case '0':
			v = append(v, 0)
		case '1':
			v = append(v, 1)
		default:
			return 0, NewInvalidCatalogError(fmt.Sprintf("bit string %q contains %q", s, r))
		}
	}
	return WordFromVector(v)
}

// Language is an ordered inventory of distinct words.
//
// The order carries no meaning for the set, but output tables and the
// maximality replay of the implicature engine follow it.
type Language []Word

// Contains reports whether the language has word w.
func (l Language) Contains(w Word) bool {
	return slices.Contains(l, w)
}

// Validate checks the language is non-empty and duplicate-free.
func (l Language) Validate() error {
	if len(l) == 0 {
		return NewInvalidCatalogError("language is empty")
	}
	var seen uint16
	for _, w := range l {
		if w&^wordMask != 0 {
			return NewInvalidCatalogError(fmt.Sprintf("word %08b has more than %d truth values", uint8(w), Worlds))
		}
		bit := uint16(1) << w
		if seen&bit != 0 {
			return &Error{Kind: KindInvalidCatalog, Message: "duplicate word in language", Word: w, HasWord: true, Language: l}
		}
		seen |= bit
	}
	return nil
}

// Key returns an order-free identity for the language: bit w is set for
// every word w it contains.
func (l Language) Key() uint16 {
	var k uint16
	for _, w := range l {
		k |= 1 << w
	}
	return k
}

// Clone returns a copy that does not share storage with l.
func (l Language) Clone() Language {
	return slices.Clone(l)
}

// String renders the language as bit strings, e.g. "[1110 1000]".
func (l Language) String() string {
	parts := make([]string, len(l))
	for i, w := range l {
		parts[i] = w.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

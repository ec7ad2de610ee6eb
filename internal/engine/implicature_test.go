package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

func TestAlternatives(t *testing.T) {
	l := ir.Language{catalog.OR, catalog.AND}

	assert.Equal(t, ir.Language{catalog.AND}, Alternatives(catalog.OR, l))
	assert.Empty(t, Alternatives(catalog.AND, l), "AND entails OR, so OR is not an alternative")
}

func TestAlternatives_KeepsLanguageOrder(t *testing.T) {
	l := ir.Language{catalog.NOR, catalog.Q, catalog.P, catalog.OR}
	assert.Equal(t, ir.Language{catalog.NOR, catalog.Q, catalog.P}, Alternatives(catalog.OR, l))
}

func TestStrengthen_OrAnd(t *testing.T) {
	l := ir.Language{catalog.OR, catalog.AND}

	assert.Equal(t, ir.Language{catalog.AND}, Excludable(catalog.OR, l))
	assert.Equal(t, catalog.XOR, Strengthen(catalog.OR, l))

	assert.Empty(t, Excludable(catalog.AND, l))
	assert.Equal(t, catalog.AND, Strengthen(catalog.AND, l))

	assert.Equal(t, ir.Language{catalog.XOR, catalog.AND}, StrengthenLanguage(l))
}

func TestStrengthen_SymmetricAlternativesNotExcluded(t *testing.T) {
	// P and Q cannot both be negated alongside OR, and neither is excluded
	// in every maximal set, so OR keeps its plain meaning.
	l := ir.Language{catalog.P, catalog.Q, catalog.OR}

	assert.Empty(t, Excludable(catalog.OR, l))
	assert.Equal(t, ir.Language{catalog.ONLYP, catalog.ONLYQ, catalog.OR}, StrengthenLanguage(l))
}

func TestStrengthen_Examples(t *testing.T) {
	tests := []struct {
		name       string
		lang       ir.Language
		word       ir.Word
		excludable ir.Language
		want       ir.Word
	}{
		{
			name:       "P with Q and AND",
			lang:       ir.Language{catalog.P, catalog.Q, catalog.OR, catalog.AND},
			word:       catalog.P,
			excludable: ir.Language{catalog.Q, catalog.AND},
			want:       catalog.ONLYP,
		},
		{
			name:       "OR with AND among P and Q",
			lang:       ir.Language{catalog.P, catalog.Q, catalog.OR, catalog.AND},
			word:       catalog.OR,
			excludable: ir.Language{catalog.AND},
			want:       catalog.XOR,
		},
		{
			name:       "AND with NOR",
			lang:       ir.Language{catalog.P, catalog.Q, catalog.AND, catalog.NOR},
			word:       catalog.AND,
			excludable: ir.Language{catalog.NOR},
			want:       catalog.AND,
		},
		{
			name:       "NOR with P Q AND",
			lang:       ir.Language{catalog.P, catalog.Q, catalog.AND, catalog.NOR},
			word:       catalog.NOR,
			excludable: ir.Language{catalog.P, catalog.Q, catalog.AND},
			want:       catalog.NOR,
		},
		{
			name: "AND in the full catalog",
			lang: catalog.All(),
			word: catalog.AND,
			excludable: ir.Language{
				catalog.NAND, catalog.XOR, catalog.NOTQ, catalog.ONLYP,
				catalog.NOTP, catalog.ONLYQ, catalog.NOR, catalog.CONT,
			},
			want: catalog.AND,
		},
		{
			name:       "TAU in the full catalog",
			lang:       catalog.All(),
			word:       catalog.TAU,
			excludable: ir.Language{catalog.CONT},
			want:       catalog.TAU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.excludable, Excludable(tt.word, tt.lang))
			assert.Equal(t, tt.want, Strengthen(tt.word, tt.lang))
		})
	}
}

func TestStrengthen_SingleWordIdentity(t *testing.T) {
	for _, w := range catalog.All() {
		assert.Equal(t, w, Strengthen(w, ir.Language{w}), "word %s", w)
	}
}

func TestStrengthen_EntailsPrejacent(t *testing.T) {
	candidates := []ir.Word{
		catalog.TAU, catalog.OR, catalog.IFF, catalog.AND,
		catalog.NAND, catalog.XOR, catalog.NOR, catalog.CONT,
	}
	err := ForEachLanguage(candidates, func(l ir.Language) error {
		s := StrengthenLanguage(l)
		require.Len(t, s, len(l))
		for i, w := range l {
			assert.True(t, s[i].Entails(w), "strengthened %s of %s in %s", s[i], w, l)
			if w != catalog.CONT {
				assert.NotEqual(t, catalog.CONT, s[i], "%s strengthened to a contradiction in %s", w, l)
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestReplayMaximality(t *testing.T) {
	tests := []struct {
		name     string
		retained []uint32
		c        uint32
		want     []uint32
	}{
		{name: "first candidate", retained: nil, c: 0b101, want: []uint32{0b101}},
		{name: "incomparable appended", retained: []uint32{0b011}, c: 0b100, want: []uint32{0b011, 0b100}},
		{name: "subset of retained dropped", retained: []uint32{0b111}, c: 0b010, want: []uint32{0b111}},
		{name: "superset replaces", retained: []uint32{0b010}, c: 0b011, want: []uint32{0b011}},
		{
			// Removing 001 before any append shifts the visited list, so 010
			// is never visited and survives alongside its superset.
			name:     "removal before append skips next",
			retained: []uint32{0b001, 0b010},
			c:        0b011,
			want:     []uint32{0b010, 0b011},
		},
		{
			// After the first append the visited list is no longer touched:
			// 010 is visited, removed from the new list and c appended again.
			name:     "removal after append duplicates",
			retained: []uint32{0b001, 0b010},
			c:        0b110,
			want:     []uint32{0b001, 0b110, 0b110},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in []uint32
			if tt.retained != nil {
				in = append([]uint32(nil), tt.retained...)
			}
			assert.Equal(t, tt.want, replayMaximality(in, tt.c))
		})
	}
}

func TestExhaustifier_MatchesUncached(t *testing.T) {
	exh := NewExhaustifier()
	err := ForEachLanguage(catalog.All()[:10], func(l ir.Language) error {
		for _, w := range l {
			require.Equal(t, Excludable(w, l), exh.Excludable(w, l), "word %s in %s", w, l)
			require.Equal(t, Strengthen(w, l), exh.Strengthen(w, l), "word %s in %s", w, l)
		}
		require.Equal(t, StrengthenLanguage(l), exh.StrengthenLanguage(l))
		return nil
	})
	require.NoError(t, err)

	stats := exh.Stats()
	assert.Positive(t, stats.Hits)
	assert.Equal(t, exh.Len(), stats.Misses)
}

func TestExhaustifier_KeyIsOrderSensitive(t *testing.T) {
	a := newExhKey(catalog.OR, []ir.Word{catalog.P, catalog.Q})
	b := newExhKey(catalog.OR, []ir.Word{catalog.Q, catalog.P})
	c := newExhKey(catalog.OR, []ir.Word{catalog.P})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, newExhKey(catalog.OR, []ir.Word{catalog.P, catalog.Q}))
}

func TestExplain(t *testing.T) {
	ex := Explain(catalog.OR, ir.Language{catalog.P, catalog.Q, catalog.OR, catalog.AND})

	assert.Equal(t, catalog.OR, ex.Prejacent)
	assert.Equal(t, ir.Language{catalog.P, catalog.Q, catalog.AND}, ex.Alternatives)
	assert.Equal(t, 7, ex.Candidates)
	// Every subset that leaves OR consistent: those not containing both P and Q.
	assert.Equal(t, 5, ex.Admissible)
	assert.Equal(t, ir.Language{catalog.AND}, ex.Excludable)
	assert.Equal(t, catalog.XOR, ex.Strengthened)
	require.NotEmpty(t, ex.Retained)
	for _, set := range ex.Retained {
		assert.True(t, set.Contains(catalog.AND), "retained set %s", set)
	}
}

func TestExplain_NoAlternatives(t *testing.T) {
	ex := Explain(catalog.AND, ir.Language{catalog.OR, catalog.AND})

	assert.Empty(t, ex.Alternatives)
	assert.Zero(t, ex.Candidates)
	assert.Zero(t, ex.Admissible)
	assert.Empty(t, ex.Retained)
	assert.Empty(t, ex.Excludable)
	assert.Equal(t, catalog.AND, ex.Strengthened)
}

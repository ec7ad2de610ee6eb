package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

func TestEnumerateLanguages_Order(t *testing.T) {
	a, b, c := catalog.AND, catalog.OR, catalog.NAND

	langs, err := EnumerateLanguages([]ir.Word{a, b, c})
	require.NoError(t, err)

	want := []ir.Language{
		{a, b, c},
		{b, c},
		{a, c},
		{c},
		{a, b},
		{b},
		{a},
	}
	assert.Equal(t, want, langs)
}

func TestEnumerateLanguages_CountAndDistinct(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		candidates := catalog.All()[:n]

		langs, err := EnumerateLanguages(candidates)
		require.NoError(t, err)
		assert.Len(t, langs, LanguageCount(n), "n=%d", n)

		seen := make(map[uint16]bool, len(langs))
		for _, l := range langs {
			require.NotEmpty(t, l)
			require.NoError(t, l.Validate())
			assert.False(t, seen[l.Key()], "language %s enumerated twice", l)
			seen[l.Key()] = true
		}
	}
}

func TestEnumerateLanguages_WordsKeepCandidateOrder(t *testing.T) {
	candidates := []ir.Word{catalog.NOR, catalog.TAU, catalog.AND}
	pos := map[ir.Word]int{catalog.NOR: 0, catalog.TAU: 1, catalog.AND: 2}

	langs, err := EnumerateLanguages(candidates)
	require.NoError(t, err)
	for _, l := range langs {
		for i := 1; i < len(l); i++ {
			assert.Less(t, pos[l[i-1]], pos[l[i]], "language %s out of candidate order", l)
		}
	}
}

func TestEnumerateLanguages_Duplicates(t *testing.T) {
	_, err := EnumerateLanguages([]ir.Word{catalog.AND, catalog.OR, catalog.AND})
	require.Error(t, err)
	assert.True(t, ir.IsInvalidCatalog(err))
}

func TestEnumerateLanguages_TooMany(t *testing.T) {
	candidates := make([]ir.Word, MaxCandidates+1)
	_, err := EnumerateLanguages(candidates)
	require.Error(t, err)
	assert.True(t, ir.IsInvalidCatalog(err))
}

func TestForEachLanguage_StopsOnError(t *testing.T) {
	calls := 0
	stop := ir.NewInvalidCatalogError("stop")
	err := ForEachLanguage(catalog.All()[:4], func(ir.Language) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)
}

func TestForEachSubset_Empty(t *testing.T) {
	called := false
	ForEachSubset(0, func(uint32) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestLanguageCount(t *testing.T) {
	assert.Equal(t, 0, LanguageCount(0))
	assert.Equal(t, 1, LanguageCount(1))
	assert.Equal(t, 15, LanguageCount(4))
	assert.Equal(t, 65535, LanguageCount(16))
}

package engine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
	"github.com/roach88/connective/internal/testutil"
)

func TestInformativeness(t *testing.T) {
	binary := testutil.BinaryUtility()
	graded := testutil.GradedUtility()

	tests := []struct {
		name string
		lang ir.Language
		u    ir.Utility
		norm ir.Normalization
		want string
	}{
		{"tautology", ir.Language{catalog.TAU}, binary, ir.NormalizationUniform, "1/4"},
		{"tautology unnormalized", ir.Language{catalog.TAU}, binary, ir.NormalizationNone, "1"},
		{"exclusive or and conjunction", ir.Language{catalog.XOR, catalog.AND}, binary, ir.NormalizationUniform, "1/2"},
		{"exclusive or and conjunction graded", ir.Language{catalog.XOR, catalog.AND}, graded, ir.NormalizationUniform, "5/8"},
		{"one word per world", ir.Language{catalog.ONLYP, catalog.ONLYQ, catalog.AND, catalog.NOR}, binary, ir.NormalizationUniform, "1"},
		{"contradiction alone", ir.Language{catalog.CONT}, binary, ir.NormalizationUniform, "0"},
		{"contradiction contributes nothing", ir.Language{catalog.TAU, catalog.CONT}, binary, ir.NormalizationUniform, "1/4"},
		{"overlapping words share a world", ir.Language{catalog.P, catalog.Q}, binary, ir.NormalizationUniform, "3/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Informativeness(tt.lang, tt.u, tt.norm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.RatString())
		})
	}
}

func TestInformativeness_Bounded(t *testing.T) {
	for _, u := range []ir.Utility{testutil.BinaryUtility(), testutil.GradedUtility(), testutil.CornerUtility()} {
		err := ForEachLanguage(testutil.CommutativeWords, func(l ir.Language) error {
			info, err := Informativeness(StrengthenLanguage(l), u, ir.NormalizationUniform)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, info.Sign(), 0, "%s under %s", l, u.Name)
			assert.LessOrEqual(t, info.Cmp(big.NewRat(1, 1)), 0, "%s under %s", l, u.Name)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestInformativeness_NormalizationScalesByQuarter(t *testing.T) {
	l := ir.Language{catalog.XOR, catalog.AND, catalog.NOR}
	u := testutil.GradedUtility()

	uniform, err := Informativeness(l, u, ir.NormalizationUniform)
	require.NoError(t, err)
	none, err := Informativeness(l, u, ir.NormalizationNone)
	require.NoError(t, err)

	assert.Zero(t, new(big.Rat).Mul(uniform, big.NewRat(4, 1)).Cmp(none))
}

func TestWordContribution_DegenerateWord(t *testing.T) {
	_, err := wordContribution(0, catalog.CONT, testutil.BinaryUtility())
	require.Error(t, err)
	assert.True(t, ir.IsDegenerateWord(err))
	assert.Equal(t, catalog.CONT, err.Word)
}

func TestWordContribution(t *testing.T) {
	c, err := wordContribution(1, catalog.XOR, testutil.GradedUtility())
	require.NoError(t, err)
	// (U(1,1) + U(1,2)) / 2 = (1 + 1/2) / 2
	assert.Equal(t, "3/4", c.RatString())
}

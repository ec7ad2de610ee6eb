package engine

import (
	"math/big"

	"github.com/roach88/connective/internal/ir"
)

// worldPrior is the uniform prior over the four worlds.
var worldPrior = big.NewRat(1, ir.Worlds)

// Informativeness returns the expected communicative utility of l.
//
// At each world the speaker picks uniformly among the words of l true there;
// the listener picks uniformly among the worlds where that word is true and
// scores u(world, guess). The score is exact. With NormalizationUniform the
// sum over worlds is weighted by the uniform prior, so for utilities in [0,1]
// the result lies in [0,1].
//
// l is expected to be already strengthened; the scorer does not strengthen.
func Informativeness(l ir.Language, u ir.Utility, n ir.Normalization) (*big.Rat, error) {
	total := new(big.Rat)
	for _, world := range ir.AllWorlds {
		var speaker []ir.Word
		for _, w := range l {
			if w.At(world) {
				speaker = append(speaker, w)
			}
		}
		if len(speaker) == 0 {
			continue
		}
		pick := big.NewRat(1, int64(len(speaker)))
		for _, w := range speaker {
			c, err := wordContribution(world, w, u)
			if err != nil {
				return nil, err.WithLanguage(l)
			}
			total.Add(total, c.Mul(c, pick))
		}
	}
	if n == ir.NormalizationUniform {
		total.Mul(total, worldPrior)
	}
	return total, nil
}

// wordContribution returns (1/|true worlds of w|) * sum of u(world, w2) over
// the worlds w2 where w is true.
func wordContribution(world ir.World, w ir.Word, u ir.Utility) (*big.Rat, *ir.Error) {
	count := w.Count()
	if count == 0 {
		return nil, ir.NewDegenerateWordError(w, nil)
	}
	sum := new(big.Rat)
	for _, guess := range ir.AllWorlds {
		if w.At(guess) {
			sum.Add(sum, u.Value(world, guess))
		}
	}
	return sum.Mul(sum, big.NewRat(1, int64(count))), nil
}

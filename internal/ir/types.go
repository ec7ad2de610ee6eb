package ir

import (
	"fmt"
	"math/big"
	"slices"
)

// Catalog is the ordered list of candidate words an experiment enumerates.
type Catalog struct {
	Name  string `json:"name"`
	Words []Word `json:"words"`
}

// Validate checks the catalog is non-empty, duplicate-free and small enough
// to enumerate.
func (c Catalog) Validate() error {
	if len(c.Words) == 0 {
		return NewInvalidCatalogError(fmt.Sprintf("catalog %q is empty", c.Name))
	}
	if len(c.Words) > 1<<Worlds {
		return NewInvalidCatalogError(fmt.Sprintf("catalog %q has %d words, at most %d exist", c.Name, len(c.Words), 1<<Worlds))
	}
	return Language(c.Words).Validate()
}

// WeightTable assigns a structural cost to each connective.
type WeightTable struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Costs       map[Word]int `json:"costs"`
}

// Cost returns the cost of w.
// Returns an UnknownConnective error if the table has no entry for w.
func (t WeightTable) Cost(w Word) (int, error) {
	c, ok := t.Costs[w]
	if !ok {
		return 0, NewUnknownConnectiveError(w, fmt.Sprintf("weight table %q", t.Name))
	}
	return c, nil
}

// SortedWords returns the words of a weight table in ascending order.
func (t WeightTable) SortedWords() []Word {
	words := make([]Word, 0, len(t.Costs))
	for w := range t.Costs {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// Utility scores how useful it is to understand world2 when world1 is the case.
type Utility struct {
	Name   string                   `json:"name"`
	Matrix [Worlds][Worlds]*big.Rat `json:"matrix"`
}

// Value returns U(world1, world2). A nil entry counts as zero.
func (u Utility) Value(world1, world2 World) *big.Rat {
	if v := u.Matrix[world1][world2]; v != nil {
		return v
	}
	return new(big.Rat)
}

// Normalization selects how the informativeness sum is scaled.
type Normalization string

const (
	// NormalizationUniform multiplies by the uniform world prior 1/4.
	// Informativeness then lies in [0,1] for utilities bounded by [0,1].
	NormalizationUniform Normalization = "uniform"

	// NormalizationNone leaves the sum unscaled.
	NormalizationNone Normalization = "none"
)

// ValidNormalizations defines allowed normalization modes.
var ValidNormalizations = map[Normalization]bool{
	NormalizationUniform: true,
	NormalizationNone:    true,
}

// Experiment is the complete configuration of one run.
// It is read-only once compiled and is passed explicitly to every scorer.
type Experiment struct {
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Catalog       Catalog       `json:"catalog"`
	Weights       WeightTable   `json:"weights"`
	Utility       Utility       `json:"utility"`
	Normalization Normalization `json:"normalization"`
}

// Record is one scored language, the unit handed to reporting sinks.
type Record struct {
	// Index is the position of the record in the full table.
	Index int `json:"index"`

	// Language is the plain (unstrengthened) inventory.
	Language Language `json:"language"`

	// Complexity is the summed weight-table cost of the plain words.
	Complexity int `json:"complexity"`

	// Informativeness is computed on the strengthened language.
	Informativeness *big.Rat `json:"informativeness"`

	// Names are the display names of the plain words, positionally.
	Names []string `json:"names,omitempty"`
}

// InformativenessFloat returns the nearest float64 to the exact value.
func (r Record) InformativenessFloat() float64 {
	if r.Informativeness == nil {
		return 0
	}
	f, _ := r.Informativeness.Float64()
	return f
}

// Table is the output of a run: every record plus the Pareto frontier.
type Table struct {
	Experiment Experiment `json:"experiment"`
	RunID      string     `json:"run_id"`
	Records    []Record   `json:"records"`

	// Frontier holds indices into Records, in table order.
	Frontier []int `json:"frontier"`
}

// FrontierRecords returns the frontier records in table order.
func (t *Table) FrontierRecords() []Record {
	out := make([]Record, len(t.Frontier))
	for i, idx := range t.Frontier {
		out[i] = t.Records[idx]
	}
	return out
}

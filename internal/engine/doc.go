// Package engine scores inventories of binary Boolean connectives.
//
// A run enumerates every non-empty language over an experiment's catalog and
// scores each one on two axes:
//
//   - complexity: the summed weight-table cost of the plain words;
//   - informativeness: the expected utility of communicating with the
//     strengthened words, where each word is exhaustified against the rest
//     of its language by innocent exclusion.
//
// The Pareto frontier of the scored table (minimal complexity, maximal
// informativeness) is extracted last.
//
// Pipeline:
//
//	ForEachLanguage -> Complexity(plain)
//	                -> StrengthenLanguage -> Informativeness(strengthened)
//	                -> Frontier(records)
//
// DETERMINISM:
// Languages are enumerated in a fixed mask order and the implicature
// replay depends on that order. Scores are exact rationals, so frontier
// membership never depends on floating-point ties. Evaluation is
// single-threaded.
package engine

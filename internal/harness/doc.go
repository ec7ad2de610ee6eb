// Package harness runs conformance scenarios against the scoring engine.
//
// A scenario names an experiment and a language, and states what the engine
// must conclude about it: the alternatives and innocently excludable sets of
// individual words, the strengthened language, and the language's complexity
// and informativeness.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: and_or
//	description: "OR is strengthened to exclusive or"
//	experiment: default
//	language: [AND, OR]
//	expect:
//	  alternatives: { AND: [], OR: [AND] }
//	  excludable: { OR: [AND], AND: [] }
//	  strengthened: [AND, XOR]
//	  complexity: 6
//	  informativeness: "1/2"
//
// Words are written as display names (AND, OR, <-, ...) or as bit strings
// ("1110"). Every expect field is optional, but at least one must be set.
// Unknown fields are rejected.
//
// # Trace
//
// Run records one "explain" event per word of the language, in language
// order, followed by one "score" event. RunWithGolden compares the canonical
// JSON of that trace against testdata/golden/{name}.golden:
//
//	go test ./internal/harness -update
//
// regenerates the golden files.
package harness

package harness

import (
	"bytes"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

// DefaultExperiment is used when a scenario names no experiment.
const DefaultExperiment = "default"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Experiment is the experiment the language is scored under.
	// Empty means DefaultExperiment.
	Experiment string `yaml:"experiment,omitempty"`

	// Language lists the words of the language, by name or bit string.
	Language []string `yaml:"language"`

	Expect Expectations `yaml:"expect"`
}

// Expectations holds what the engine must conclude about the language.
// Nil or empty fields are not checked.
type Expectations struct {
	// Alternatives maps a word of the language to its expected alternatives.
	// Compared as sets.
	Alternatives map[string][]string `yaml:"alternatives,omitempty"`

	// Excludable maps a word of the language to its expected innocently
	// excludable alternatives. Compared as sets.
	Excludable map[string][]string `yaml:"excludable,omitempty"`

	// Strengthened is the expected strengthened language, positionally.
	Strengthened []string `yaml:"strengthened,omitempty"`

	Complexity *int `yaml:"complexity,omitempty"`

	// Informativeness is an exact rational such as "1/2" or "0.375".
	Informativeness string `yaml:"informativeness,omitempty"`
}

// ExperimentName returns the scenario's experiment, or DefaultExperiment.
func (s *Scenario) ExperimentName() string {
	if s.Experiment == "" {
		return DefaultExperiment
	}
	return s.Experiment
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and that every
// word the scenario mentions resolves.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Language) == 0 {
		return fmt.Errorf("language is required and must be non-empty")
	}

	lang, err := catalog.ParseLanguage(s.Language)
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}

	e := s.Expect
	if len(e.Alternatives) == 0 && len(e.Excludable) == 0 && len(e.Strengthened) == 0 &&
		e.Complexity == nil && e.Informativeness == "" {
		return fmt.Errorf("expect must set at least one of alternatives, excludable, strengthened, complexity, informativeness")
	}

	if err := validateWordSets("alternatives", e.Alternatives, lang); err != nil {
		return err
	}
	if err := validateWordSets("excludable", e.Excludable, lang); err != nil {
		return err
	}

	if len(e.Strengthened) > 0 {
		if len(e.Strengthened) != len(lang) {
			return fmt.Errorf("expect.strengthened has %d words, language has %d", len(e.Strengthened), len(lang))
		}
		for i, name := range e.Strengthened {
			if _, err := catalog.Lookup(name); err != nil {
				return fmt.Errorf("expect.strengthened[%d]: %w", i, err)
			}
		}
	}

	if e.Complexity != nil && *e.Complexity < 0 {
		return fmt.Errorf("expect.complexity must be non-negative")
	}
	if e.Informativeness != "" {
		if _, ok := new(big.Rat).SetString(e.Informativeness); !ok {
			return fmt.Errorf("expect.informativeness: %q is not a rational number", e.Informativeness)
		}
	}
	return nil
}

func validateWordSets(field string, sets map[string][]string, lang ir.Language) error {
	for key, words := range sets {
		w, err := catalog.Lookup(key)
		if err != nil {
			return fmt.Errorf("expect.%s: %w", field, err)
		}
		if !lang.Contains(w) {
			return fmt.Errorf("expect.%s: %s is not in the language", field, key)
		}
		for i, name := range words {
			if _, err := catalog.Lookup(name); err != nil {
				return fmt.Errorf("expect.%s.%s[%d]: %w", field, key, i, err)
			}
		}
	}
	return nil
}

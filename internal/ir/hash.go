package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainExperiment = "connective/experiment/v1"
	DomainTable      = "connective/table/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LanguageArray renders a language as bit strings in language order.
func LanguageArray(l Language) IRArray {
	arr := make(IRArray, len(l))
	for i, w := range l {
		arr[i] = IRString(w.String())
	}
	return arr
}

// RecordObject builds the canonical object for a scored record.
// The table index is not part of it: two runs that produce the same rows
// in the same order produce the same digest.
func RecordObject(r Record) IRObject {
	return NewIRObjectFromPairs(
		O("language", LanguageArray(r.Language)),
		O("complexity", IRInt(r.Complexity)),
		O("informativeness", IRRat(r.Informativeness)),
		O("names", IRStrings(r.Names)),
	)
}

// ExperimentObject builds the canonical object for an experiment.
// The human-readable name and description are excluded: renaming an
// experiment does not change its fingerprint.
func ExperimentObject(e Experiment) IRObject {
	costs := make(IRObject, len(e.Weights.Costs))
	for w, c := range e.Weights.Costs {
		costs[w.String()] = IRInt(c)
	}

	matrix := make(IRArray, Worlds)
	for _, w1 := range AllWorlds {
		row := make(IRArray, Worlds)
		for _, w2 := range AllWorlds {
			row[w2] = IRRat(e.Utility.Value(w1, w2))
		}
		matrix[w1] = row
	}

	return NewIRObjectFromPairs(
		O("catalog", LanguageArray(e.Catalog.Words)),
		O("weights", costs),
		O("utility", matrix),
		O("normalization", IRString(e.Normalization)),
		O("ir_version", IRString(IRVersion)),
	)
}

// ExperimentFingerprint computes the content-addressed identity of an
// experiment. Returns error if the experiment cannot be canonically marshaled.
func ExperimentFingerprint(e Experiment) (string, error) {
	canonical, err := MarshalCanonical(ExperimentObject(e))
	if err != nil {
		return "", fmt.Errorf("ExperimentFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainExperiment, canonical), nil
}

// TableDigest computes a digest over records in the given order.
func TableDigest(records []Record) (string, error) {
	arr := make(IRArray, len(records))
	for i, r := range records {
		arr[i] = RecordObject(r)
	}
	canonical, err := MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("TableDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

package report

import (
	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

// Snapshot builds the canonical object of a run result:
//
//	{"catalog": [names], "frontier": [records], "languages": N, "table": [records]}
//
// The "table" key is present only when full is set. Run ID and experiment
// name are left out so the snapshot depends on the computation alone.
func Snapshot(t *ir.Table, full bool) (ir.IRObject, error) {
	names, err := catalog.Names(t.Experiment.Catalog.Words)
	if err != nil {
		return nil, err
	}

	obj := ir.NewIRObjectFromPairs(
		ir.O("catalog", ir.IRStrings(names)),
		ir.O("frontier", recordArray(t.FrontierRecords())),
		ir.O("languages", ir.IRInt(len(t.Records))),
	)
	if full {
		obj["table"] = recordArray(t.Records)
	}
	return obj, nil
}

// MarshalSnapshot returns the canonical JSON bytes of Snapshot.
func MarshalSnapshot(t *ir.Table, full bool) ([]byte, error) {
	obj, err := Snapshot(t, full)
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(obj)
}

func recordArray(records []ir.Record) ir.IRArray {
	arr := make(ir.IRArray, len(records))
	for i, r := range records {
		arr[i] = ir.RecordObject(r)
	}
	return arr
}

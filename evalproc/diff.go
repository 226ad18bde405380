// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"errors"

	"github.com/evalview/evalview/evalfmt"
)

// FindDiff returns a same-length slice of records with every
// attribute that is identical across all of records removed, leaving
// only the distinguishing attributes of each record. An attribute is
// identical when its canonical serialization matches in every record;
// a key missing from any record is never identical. Kept fields
// preserve each record's own value and relative key order.
//
// A nested value is either entirely common or entirely kept; there is
// no field-by-field diff of nested structures. If all records are
// equal, every output record is empty. A single record diffs to an
// empty record, since every key is trivially common with itself.
//
// FindDiff returns an error if records is empty, since there is no
// record to anchor the common-key computation.
func FindDiff(records []*evalfmt.Record) ([]*evalfmt.Record, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to diff")
	}
	common := commonKeys(records)
	out := make([]*evalfmt.Record, len(records))
	for i, r := range records {
		d := new(evalfmt.Record)
		if r != nil {
			for _, f := range r.Fields {
				if !common[f.Key] {
					d.Set(f.Key, f.Value)
				}
			}
		}
		out[i] = d
	}
	return out, nil
}

// VaryingKeys returns the keys of records[0] for which at least two
// of records have different values, in records[0]'s key order.
//
// This is useful for warning the user if aggregating a set of results
// has hidden a difference between them: rows that were grouped
// together but still vary in some attribute.
func VaryingKeys(records []*evalfmt.Record) []string {
	if len(records) <= 1 || records[0] == nil {
		// There can't be any differences.
		return nil
	}
	common := commonKeys(records)
	var out []string
	for _, f := range records[0].Fields {
		if !common[f.Key] {
			out = append(out, f.Key)
		}
	}
	return out
}

// commonKeys returns the set of keys of records[0] whose canonical
// value is the same in every record. records must be non-empty.
func commonKeys(records []*evalfmt.Record) map[string]bool {
	common := make(map[string]bool)
	if records[0] == nil {
		return common
	}
	for _, f := range records[0].Fields {
		base := f.Value.Canon()
		ok := true
		for _, r := range records[1:] {
			v, present := r.Get(f.Key)
			if !present || v.Canon() != base {
				ok = false
				break
			}
		}
		if ok {
			common[f.Key] = true
		}
	}
	return common
}

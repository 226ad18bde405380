// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"reflect"
	"testing"

	"github.com/evalview/evalview/evalfmt"
)

func rec(t *testing.T, src string) *evalfmt.Record {
	t.Helper()
	r, err := evalfmt.UnmarshalRecord([]byte(src))
	if err != nil {
		t.Fatalf("bad record %s: %s", src, err)
	}
	return r
}

func TestFindDiff(t *testing.T) {
	check := func(in []*evalfmt.Record, want ...string) {
		t.Helper()
		got, err := FindDiff(in)
		if err != nil {
			t.Errorf("unexpected error %s", err)
			return
		}
		var gots []string
		for _, r := range got {
			gots = append(gots, r.Canon())
		}
		if !reflect.DeepEqual(gots, want) {
			t.Errorf("got %v, want %v", gots, want)
		}
	}

	// Shared key removed, differing keys kept.
	check(
		[]*evalfmt.Record{
			rec(t, `{"a": 1, "b": 2}`),
			rec(t, `{"a": 1, "b": 3}`),
		},
		`{"b":2}`, `{"b":3}`,
	)

	// All records equal: every output is empty.
	check(
		[]*evalfmt.Record{rec(t, `{"a": 1}`), rec(t, `{"a": 1}`)},
		`{}`, `{}`,
	)

	// A single record trivially has every key in common with itself.
	check([]*evalfmt.Record{rec(t, `{"a": 1, "b": 2}`)}, `{}`)

	// Fully distinct records pass through unchanged.
	check(
		[]*evalfmt.Record{
			rec(t, `{"a": 1, "b": 2}`),
			rec(t, `{"a": 2, "b": 3}`),
		},
		`{"a":1,"b":2}`, `{"a":2,"b":3}`,
	)

	// A key missing from any record is never common.
	check(
		[]*evalfmt.Record{
			rec(t, `{"a": 1, "b": 2}`),
			rec(t, `{"a": 1}`),
		},
		`{"b":2}`, `{}`,
	)

	// Nested values are compared whole, not merged.
	check(
		[]*evalfmt.Record{
			rec(t, `{"args": {"k": 1, "j": 2}, "m": "ada"}`),
			rec(t, `{"args": {"k": 1, "j": 3}, "m": "ada"}`),
		},
		`{"args":{"k":1,"j":2}}`, `{"args":{"k":1,"j":3}}`,
	)

	// Each output keeps its own record's key order.
	check(
		[]*evalfmt.Record{
			rec(t, `{"x": 1, "y": 2, "z": 0}`),
			rec(t, `{"y": 3, "x": 4, "z": 0}`),
		},
		`{"x":1,"y":2}`, `{"y":3,"x":4}`,
	)
}

func TestFindDiffEmpty(t *testing.T) {
	if _, err := FindDiff(nil); err == nil {
		t.Errorf("want error for empty input")
	}
}

func TestVaryingKeys(t *testing.T) {
	check := func(in []*evalfmt.Record, want ...string) {
		t.Helper()
		got := VaryingKeys(in)
		if len(want) == 0 {
			want = nil
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	check(nil)
	check([]*evalfmt.Record{rec(t, `{"a": 1}`)})
	check([]*evalfmt.Record{
		rec(t, `{"a": 1, "b": 1}`),
		rec(t, `{"a": 1, "b": 1}`),
	})
	check([]*evalfmt.Record{
		rec(t, `{"a": 1, "b": 1}`),
		rec(t, `{"a": 2, "b": 1}`),
	}, "a")
	check([]*evalfmt.Record{
		rec(t, `{"a": 1, "b": 1}`),
		rec(t, `{"a": 2, "b": 1}`),
		rec(t, `{"a": 1, "b": 2}`),
	}, "a", "b")
}

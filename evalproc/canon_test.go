// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"reflect"
	"testing"

	"github.com/evalview/evalview/evalfmt"
)

func TestCanonicalize(t *testing.T) {
	check := func(got, want []int) {
		t.Helper()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	check(Canonicalize([]int{1, 2, 3}, []int{2, 3, 4}), []int{1, 2, 3, 4})
	check(Canonicalize([]int{3, 1}, []int{1, 3}), []int{3, 1})
	check(Canonicalize([]int{1, 1, 1}), []int{1})
	check(Canonicalize[int](), nil)
	check(Canonicalize([]int{}, []int{}), nil)
}

func TestCanonicalizeFunc(t *testing.T) {
	perturbed := evalfmt.MetricName{Name: "em", Perturbation: evalfmt.NewPerturbation("typo")}
	lists := [][]evalfmt.MetricName{
		{{Name: "em"}, {Name: "f1"}},
		{{Name: "f1"}, perturbed, {Name: "em"}},
	}
	got := CanonicalizeFunc(lists, evalfmt.MetricName.Equal)
	want := []evalfmt.MetricName{{Name: "em"}, {Name: "f1"}, perturbed}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("element %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

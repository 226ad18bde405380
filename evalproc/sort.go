// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import "slices"

// SortAndDedup returns a copy of list sorted ascending by cmp with
// duplicates removed, where two elements are duplicates if cmp
// reports them equal. No two adjacent output elements compare equal.
// The input is not mutated.
//
// cmp must return a negative, zero, or positive value per the usual
// three-way contract and must define a total order over the elements;
// if it does not, the output order and deduplication are unspecified.
func SortAndDedup[T any](list []T, cmp func(a, b T) int) []T {
	out := make([]T, len(list))
	copy(out, list)
	slices.SortStableFunc(out, cmp)

	n := 0
	for i := range out {
		if n == 0 || cmp(out[n-1], out[i]) != 0 {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// SortByReference returns a copy of list reordered so elements appear
// in the order given by ref: each element's rank is its first index
// in ref, and elements absent from ref rank after all recognized
// elements. The sort is stable, so elements with equal rank (and in
// particular all unrecognized elements) keep their input order. An
// empty ref leaves the order unchanged.
func SortByReference[T comparable](list, ref []T) []T {
	rank := make(map[T]int, len(ref))
	for i, e := range ref {
		if _, ok := rank[e]; !ok {
			rank[e] = i
		}
	}
	return sortByRank(list, func(e T) int {
		r, ok := rank[e]
		if !ok {
			return len(ref)
		}
		return r
	})
}

// SortByReferenceFunc is SortByReference for element types that are
// not comparable, using eq to match elements against ref.
func SortByReferenceFunc[T any](list, ref []T, eq func(a, b T) bool) []T {
	return sortByRank(list, func(e T) int {
		for i, r := range ref {
			if eq(r, e) {
				return i
			}
		}
		return len(ref)
	})
}

func sortByRank[T any](list []T, rankOf func(T) int) []T {
	type elem struct {
		rank int
		v    T
	}
	es := make([]elem, len(list))
	for i, v := range list {
		es[i] = elem{rankOf(v), v}
	}
	slices.SortStableFunc(es, func(a, b elem) int { return a.rank - b.rank })
	out := make([]T, len(list))
	for i, e := range es {
		out[i] = e.v
	}
	return out
}

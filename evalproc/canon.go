// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

// Canonicalize merges lists into a single list containing each
// distinct element exactly once, in the order each element is first
// encountered scanning the lists left to right. No sorting is
// performed.
func Canonicalize[T comparable](lists ...[]T) []T {
	var out []T
	seen := make(map[T]bool)
	for _, list := range lists {
		for _, e := range list {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// CanonicalizeFunc is Canonicalize for element types that are not
// comparable, such as evalfmt.MetricName, using eq to test
// membership. The membership scan is quadratic, which is fine for the
// tens of entries a result table has; switching to a keyed set would
// not change the output order.
func CanonicalizeFunc[T any](lists [][]T, eq func(a, b T) bool) []T {
	var out []T
	for _, list := range lists {
	next:
		for _, e := range list {
			for _, have := range out {
				if eq(have, e) {
					continue next
				}
			}
			out = append(out, e)
		}
	}
	return out
}

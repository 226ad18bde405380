// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/evalview/evalview/evalfmt"
)

// CompareMetricNames is a total order over metric keys for use with
// SortAndDedup: by metric name, then split, then sub-split, then
// perturbation, with the unperturbed condition first and perturbed
// conditions ordered by their canonical serialization. It reports
// zero exactly when evalfmt.MetricName.Equal reports true.
func CompareMetricNames(a, b evalfmt.MetricName) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Split, b.Split); c != 0 {
		return c
	}
	if c := strings.Compare(a.SubSplit, b.SubSplit); c != 0 {
		return c
	}
	return comparePerturbations(a.Perturbation, b.Perturbation)
}

func comparePerturbations(p1, p2 *evalfmt.Perturbation) int {
	switch {
	case p1 == nil && p2 == nil:
		return 0
	case p1 == nil:
		return -1
	case p2 == nil:
		return 1
	}
	return strings.Compare(p1.Canon(), p2.Canon())
}

// CompareAlpha orders strings alphabetically. It is a convenience
// comparator for row and column labels.
func CompareAlpha(a, b string) int {
	return strings.Compare(a, b)
}

// CompareNum orders strings numerically where possible. Values that
// parse as numbers (including common SI and IEC suffixes like "2k"
// and "1Mi") sort numerically before values that do not, with NaNs
// after other numbers; two non-numbers are unordered, so CompareNum
// is only a total order when combined with a tie-breaker such as
// CompareAlpha.
func CompareNum(a, b string) int {
	aa, erra := parseNum(a)
	bb, errb := parseNum(b)
	if erra == nil && errb == nil {
		if aa < bb || (!math.IsNaN(aa) && math.IsNaN(bb)) {
			return -1
		}
		if aa > bb || (math.IsNaN(aa) && !math.IsNaN(bb)) {
			return 1
		}
		return 0
	}
	if erra != nil && errb != nil {
		return 0
	}
	// Put numbers before non-numbers.
	if erra == nil {
		return -1
	}
	return 1
}

const numPrefixes = `KMGTPEZY`

var numRe = regexp.MustCompile(`([0-9.]+)([k` + numPrefixes + `]i?)?[bB]?`)

// parseNum is a fuzzy number parser. It supports common patterns,
// such as SI prefixes.
func parseNum(x string) (float64, error) {
	// Try parsing as a regular float.
	v, err := strconv.ParseFloat(x, 64)
	if err == nil {
		return v, nil
	}

	// Try a suffixed number.
	subs := numRe.FindStringSubmatch(x)
	if subs != nil {
		v, err := strconv.ParseFloat(subs[1], 64)
		if err == nil {
			exp := 0
			if len(subs[2]) > 0 {
				pre := subs[2][0]
				if pre == 'k' {
					pre = 'K'
				}
				exp = 1 + strings.IndexByte(numPrefixes, pre)
			}
			iec := strings.HasSuffix(subs[2], "i")
			if iec {
				return v * math.Pow(1024, float64(exp)), nil
			}
			return v * math.Pow(1000, float64(exp)), nil
		}
	}

	return 0, strconv.ErrSyntax
}

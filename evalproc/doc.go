// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalproc provides tools for deduplicating, ordering, and
// diffing evaluation results.
//
// The typical steps for preparing a set of results for tabular
// display are:
//
// 1. Merge the metric keys observed across runs into a single
// duplicate-free column list with Canonicalize or CanonicalizeFunc,
// or build a fully sorted one with SortAndDedup and a comparator such
// as CompareMetricNames.
//
// 2. Reorder the columns against a preferred display order (usually
// taken from an evalschema.Schema) with SortByReference.
//
// 3. Strip the attributes shared by every row's source record with
// FindDiff, so each row label shows only what distinguishes it.
// VaryingKeys exposes the same computation as a key list, which is
// useful for warning when rows that were grouped together still
// differ in a hidden dimension.
//
// All functions in this package are pure: they read only their
// arguments and allocate new output. They may be called concurrently.
package evalproc

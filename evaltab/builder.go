// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evaltab assembles evaluation results into display tables:
// one row per distinct run record, one column per distinct metric
// key, with row labels reduced to the attributes that actually differ
// between rows.
package evaltab

import (
	"fmt"

	"github.com/evalview/evalview/evalfmt"
	"github.com/evalview/evalview/evalproc"
	"github.com/evalview/evalview/evalschema"
)

// A Builder collects result entries into a Table.
type Builder struct {
	// rowKeys, if non-empty, is the subset of record keys that
	// identifies a row. Attributes outside this subset are residue:
	// they don't affect grouping, but if they vary within one cell
	// the cell gets a warning.
	rowKeys []string

	rows     []*rowGroup
	rowIndex map[string]int

	cols     []evalfmt.MetricName
	colIndex map[string]int

	cells map[TableKey]*cell
}

type rowGroup struct {
	rec *evalfmt.Record
}

type cell struct {
	values []float64
	// residues is the distinct residue records that contributed to
	// this cell, in first-seen order. Used to check for non-unique
	// grouping.
	residues    []*evalfmt.Record
	residueSeen map[string]bool
}

// TableKey indexes a single cell in a Table by row and column
// position.
type TableKey struct {
	Row, Col int
}

// NewBuilder returns a Builder that groups entries into rows by the
// given record keys. With no keys, the entire record identifies the
// row and there is no residue.
func NewBuilder(rowKeys ...string) *Builder {
	return &Builder{
		rowKeys:  rowKeys,
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
		cells:    make(map[TableKey]*cell),
	}
}

// Add adds one result entry to the builder. Rows and columns are
// created in first-seen order; ToTable decides the final column
// order.
func (b *Builder) Add(e evalfmt.Entry) {
	rowRec, residue := b.split(e.Record)

	rowID := rowRec.Canon()
	row, ok := b.rowIndex[rowID]
	if !ok {
		row = len(b.rows)
		b.rowIndex[rowID] = row
		b.rows = append(b.rows, &rowGroup{rec: rowRec})
	}

	colID := metricKey(e.Metric)
	col, ok := b.colIndex[colID]
	if !ok {
		col = len(b.cols)
		b.colIndex[colID] = col
		b.cols = append(b.cols, e.Metric)
	}

	k := TableKey{row, col}
	c := b.cells[k]
	if c == nil {
		c = &cell{residueSeen: make(map[string]bool)}
		b.cells[k] = c
	}
	c.values = append(c.values, e.Value)
	if resID := residue.Canon(); !c.residueSeen[resID] {
		c.residueSeen[resID] = true
		c.residues = append(c.residues, residue)
	}
}

// split partitions rec into the row-identifying record and the
// residue. Row fields keep rec's relative order even when rowKeys
// lists them differently.
func (b *Builder) split(rec *evalfmt.Record) (row, residue *evalfmt.Record) {
	if len(b.rowKeys) == 0 {
		return rec, new(evalfmt.Record)
	}
	isRow := make(map[string]bool, len(b.rowKeys))
	for _, k := range b.rowKeys {
		isRow[k] = true
	}
	row, residue = new(evalfmt.Record), new(evalfmt.Record)
	if rec != nil {
		for _, f := range rec.Fields {
			if isRow[f.Key] {
				row.Set(f.Key, f.Value)
			} else {
				residue.Set(f.Key, f.Value)
			}
		}
	}
	return row, residue
}

// metricKey returns a string that is equal for two MetricNames
// exactly when MetricName.Equal reports true, for use as a map key.
func metricKey(m evalfmt.MetricName) string {
	k := m.Name + "\x00" + m.Split + "\x00" + m.SubSplit + "\x00"
	if m.Perturbation != nil {
		k += m.Perturbation.Canon()
	}
	return k
}

// TableOpts configures the final table construction.
type TableOpts struct {
	// Schema, if non-nil, orders columns by the schema's preferred
	// metric, split, and perturbation order and names column
	// headers. Without a schema, columns keep first-seen order and
	// headers use raw names.
	Schema *evalschema.Schema
}

// ToTable finalizes the builder into a Table. It returns an error if
// no entries were added, since an empty table has no anchor for the
// row-label diff.
func (b *Builder) ToTable(opts TableOpts) (*Table, error) {
	if len(b.rows) == 0 {
		return nil, fmt.Errorf("no entries to tabulate")
	}

	cols := b.orderCols(opts.Schema)
	// Map from builder column positions to final ones.
	colPos := make(map[string]int, len(cols))
	for i, m := range cols {
		colPos[metricKey(m)] = i
	}

	t := &Table{
		Opts:         opts,
		Cols:         cols,
		Cells:        make(map[TableKey]*TableCell),
		SummaryLabel: "geomean",
	}

	var resolver evalschema.Resolver
	if opts.Schema != nil {
		resolver = opts.Schema
	}
	t.ColNames = make([]string, len(cols))
	for i, m := range cols {
		t.ColNames[i] = evalschema.HeaderName(resolver, m)
	}

	// Row labels show only what distinguishes the rows.
	recs := make([]*evalfmt.Record, len(b.rows))
	for i, rg := range b.rows {
		recs[i] = rg.rec
	}
	labels, err := evalproc.FindDiff(recs)
	if err != nil {
		return nil, err
	}
	t.Rows = make([]Row, len(b.rows))
	for i, rg := range b.rows {
		t.Rows[i] = Row{Record: rg.rec, Label: labels[i]}
	}

	for k, c := range b.cells {
		nk := TableKey{k.Row, colPos[metricKey(b.cols[k.Col])]}
		t.Cells[nk] = newTableCell(c)
	}

	t.summarize()
	return t, nil
}

// orderCols returns the observed columns reordered to the schema's
// preference: by metric name first, then split, then perturbation,
// with values the schema doesn't mention after those it does. Ties
// keep first-seen order throughout.
func (b *Builder) orderCols(schema *evalschema.Schema) []evalfmt.MetricName {
	cols := make([]evalfmt.MetricName, len(b.cols))
	copy(cols, b.cols)
	if schema == nil {
		return cols
	}

	// Successive stable reference sorts compose into a
	// lexicographic order, so apply the least significant
	// component first.
	// The unperturbed condition ranks before any perturbation.
	cols = sortByNameRef(cols, append([]string{""}, schema.PerturbationOrder()...),
		func(m evalfmt.MetricName) string { return m.Perturbation.Name() })
	cols = sortByNameRef(cols, schema.SplitOrder(),
		func(m evalfmt.MetricName) string { return m.Split })
	cols = sortByNameRef(cols, schema.MetricOrder(),
		func(m evalfmt.MetricName) string { return m.Name })
	return cols
}

func sortByNameRef(cols []evalfmt.MetricName, order []string, component func(evalfmt.MetricName) string) []evalfmt.MetricName {
	ref := make([]evalfmt.MetricName, len(order))
	for i, name := range order {
		ref[i] = evalfmt.MetricName{Name: name}
	}
	return evalproc.SortByReferenceFunc(cols, ref, func(r, e evalfmt.MetricName) bool {
		return r.Name == component(e)
	})
}

// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaltab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/aclements/go-moremath/stats"

	"github.com/evalview/evalview/evalfmt"
	"github.com/evalview/evalview/evalproc"
)

// A Table presents evaluation results in a 2D grid: one row per
// distinct run record, one column per metric key. Each cell averages
// the values that mapped to its row and column.
type Table struct {
	// Opts is the options the table was built with.
	Opts TableOpts

	// Cols is the column metric keys, in display order. ColNames
	// is the corresponding header text, resolved through the
	// schema when one was provided.
	Cols     []evalfmt.MetricName
	ColNames []string

	// Rows is the table rows in first-seen order.
	Rows []Row

	// Cells is the body of the table. Not every key pair is
	// present.
	Cells map[TableKey]*TableCell

	// Summary is the per-column summary row, indexed like Cols.
	Summary []TableSummary

	// SummaryLabel is the label of the summary row.
	SummaryLabel string
}

// A Row is one table row: the record identifying it, plus the label
// record holding only the attributes that distinguish this row from
// the others (the diff of all row records).
type Row struct {
	Record *evalfmt.Record
	Label  *evalfmt.Record
}

// LabelString renders the row label as space-separated key:value
// pairs. It is empty when nothing distinguishes this row.
func (r Row) LabelString() string {
	buf := new(strings.Builder)
	for _, f := range r.Label.Fields {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(f.Key)
		buf.WriteByte(':')
		buf.WriteString(displayValue(f.Value))
	}
	return buf.String()
}

// displayValue is Value.Canon without quotes around bare strings,
// since labels are read by humans, not parsers.
func displayValue(v evalfmt.Value) string {
	if v.Kind() == evalfmt.KindString {
		return v.Str()
	}
	return v.Canon()
}

// A TableCell is a single cell: the sample of values observed for one
// (row, column) pair.
type TableCell struct {
	// Values is the observed values, in input order.
	Values []float64

	// Mean is the arithmetic mean of Values.
	Mean float64

	// Warnings reports problems with this cell, notably residue
	// attributes that vary between the runs grouped into it.
	Warnings []error
}

// A TableSummary is one column's entry in the summary row.
type TableSummary struct {
	// HasSummary indicates that Summary is valid.
	HasSummary bool
	// Summary is the geometric mean of the column's cell means.
	Summary float64

	// Warnings reports why the summary is missing or suspect.
	Warnings []error
}

func newTableCell(c *cell) *TableCell {
	tc := &TableCell{
		Values: c.values,
		Mean:   stats.Mean(c.values),
	}
	if vk := evalproc.VaryingKeys(c.residues); len(vk) > 0 {
		tc.Warnings = append(tc.Warnings,
			errors.New("runs vary in "+strings.Join(vk, ", ")))
	}
	return tc
}

// summarize fills in the geomean summary row.
func (t *Table) summarize() {
	t.Summary = make([]TableSummary, len(t.Cols))
	for col := range t.Cols {
		s := &t.Summary[col]
		var means []float64
		for row := range t.Rows {
			if c, ok := t.Cells[TableKey{row, col}]; ok {
				means = append(means, c.Mean)
			}
		}
		if len(means) < len(t.Rows) {
			s.Warnings = append(s.Warnings,
				errors.New("row sets differ between columns; geomeans may not be comparable"))
		}
		gm := stats.GeoMean(means)
		if math.IsNaN(gm) {
			s.Warnings = append(s.Warnings,
				errors.New("means must be >0 to compute geomean"))
			continue
		}
		s.HasSummary = true
		s.Summary = gm
	}
}

// ToText renders t to a textual representation, assuming a
// fixed-width font. Cell warnings become superscript footnotes below
// the table.
func (t *Table) ToText(w io.Writer) error {
	var warningList []string
	warningSet := make(map[string]int)
	footnotes := func(msgs []error) string {
		var marks []string
		for _, msg := range msgs {
			s := msg.Error()
			i, ok := warningSet[s]
			if !ok {
				i = len(warningList)
				warningSet[s] = i
				warningList = append(warningList, s)
			}
			marks = append(marks, superscript(i+1))
		}
		return strings.Join(marks, " ")
	}

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, name := range t.ColNames {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for row := range t.Rows {
		fmt.Fprint(tw, t.Rows[row].LabelString())
		for col := range t.Cols {
			c, ok := t.Cells[TableKey{row, col}]
			if !ok {
				fmt.Fprint(tw, "\t")
				continue
			}
			fmt.Fprintf(tw, "\t%s", mark(fmt.Sprintf("%.4g", c.Mean), footnotes(c.Warnings)))
		}
		fmt.Fprintln(tw)
	}

	if len(t.Rows) > 1 {
		fmt.Fprint(tw, t.SummaryLabel)
		for col := range t.Cols {
			s := t.Summary[col]
			val := "?"
			if s.HasSummary {
				val = fmt.Sprintf("%.4g", s.Summary)
			}
			fmt.Fprintf(tw, "\t%s", mark(val, footnotes(s.Warnings)))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for i, msg := range warningList {
		if _, err := fmt.Fprintf(w, "%s %s\n", superscript(i+1), msg); err != nil {
			return err
		}
	}
	return nil
}

// ToCSV renders t to CSV format. Warnings are written in text form to
// the warnings Writer so they don't interrupt the table itself.
func (t *Table) ToCSV(w, warnings io.Writer) error {
	o := csv.NewWriter(w)

	warn := func(rowLabel string, col int, msgs []error) {
		for _, msg := range msgs {
			fmt.Fprintf(warnings, "%s, %s: %s\n", rowLabel, t.ColNames[col], msg)
		}
	}

	o.Write(append([]string{""}, t.ColNames...))
	line := make([]string, 1+len(t.Cols))
	for row := range t.Rows {
		label := t.Rows[row].LabelString()
		line[0] = label
		for col := range t.Cols {
			line[1+col] = ""
			if c, ok := t.Cells[TableKey{row, col}]; ok {
				line[1+col] = fmt.Sprint(c.Mean)
				warn(label, col, c.Warnings)
			}
		}
		o.Write(line)
	}

	if len(t.Rows) > 1 {
		line[0] = t.SummaryLabel
		for col := range t.Cols {
			s := t.Summary[col]
			line[1+col] = "?"
			if s.HasSummary {
				line[1+col] = fmt.Sprint(s.Summary)
			}
			warn(t.SummaryLabel, col, s.Warnings)
		}
		o.Write(line)
	}

	o.Flush()
	return o.Error()
}

// mark appends footnote marks to a cell value.
func mark(val, notes string) string {
	if notes == "" {
		return val
	}
	return val + " " + notes
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(i int) string {
	if i == 0 {
		return string(superDigits[0])
	}

	var buf [20]rune
	pos := len(buf)
	for i > 0 && pos > 0 {
		pos--
		buf[pos] = superDigits[i%10]
		i /= 10
	}
	return string(buf[pos:])
}

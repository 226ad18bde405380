// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Evalview presents evaluation results as comparison tables.
//
// Usage:
//
//	evalview [flags] inputs...
//
// Each input file is a JSON array of result entries of the form
//
//	{"metric": {"name": "exact_match", "split": "test",
//	            "perturbation": {"name": "typo", "prob": 0.1}},
//	 "record": {"model": "ada", "shots": 5},
//	 "value": 0.25}
//
// Entries from all inputs are merged into one table with a row per
// distinct record and a column per distinct metric key. Attributes
// shared by every row are dropped from the row labels, so only what
// differs between rows is shown. Duplicate (record, metric) pairs are
// averaged.
//
// With -schema, columns are ordered and named according to a YAML
// display schema (see the evalschema package); otherwise columns
// appear in the order they were first observed.
//
// With -row, only the named record keys identify a row; entries whose
// remaining attributes differ are merged into one cell and the cell
// is marked with a warning naming the hidden attributes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/evalview/evalview/evalfmt"
	"github.com/evalview/evalview/evalschema"
	"github.com/evalview/evalview/evaltab"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "evalview: %s\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "evalview",
		Usage:     "present evaluation results as comparison tables",
		ArgsUsage: "inputs...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "YAML display `schema` giving column order and naming",
			},
			&cli.StringSliceFlag{
				Name:  "row",
				Usage: "record `keys` that identify a row (default: all keys)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "print results in `format`: text or csv",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no input files")
	}

	var schema *evalschema.Schema
	if path := cmd.String("schema"); path != "" {
		s, err := evalschema.ParseFile(path)
		if err != nil {
			return err
		}
		schema = s
	}

	// Load the inputs concurrently. A file that fails to parse is
	// reported and skipped; the table is built from the rest.
	results := make([][]evalfmt.Entry, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			entries, err := evalfmt.ReadEntries(f)
			if err != nil {
				slog.Warn("skipping input", "path", path, "err", err)
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b := evaltab.NewBuilder(cmd.StringSlice("row")...)
	for _, entries := range results {
		for _, e := range entries {
			b.Add(e)
		}
	}
	table, err := b.ToTable(evaltab.TableOpts{Schema: schema})
	if err != nil {
		return err
	}

	out, errOut := cmd.Writer, cmd.ErrWriter
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	switch format := cmd.String("format"); format {
	case "text":
		return table.ToText(out)
	case "csv":
		// Warnings go to the error stream so they don't
		// interrupt the CSV stream.
		return table.ToCSV(out, errOut)
	default:
		return fmt.Errorf("-format must be text or csv, got %q", format)
	}
}

// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testInput = `[
	{"metric": {"name": "f1_score", "split": "test"},
	 "record": {"model": "ada", "shots": 5}, "value": 0.5},
	{"metric": {"name": "exact_match", "split": "test"},
	 "record": {"model": "ada", "shots": 5}, "value": 0.25},
	{"metric": {"name": "f1_score", "split": "test"},
	 "record": {"model": "babbage", "shots": 5}, "value": 0.75},
	{"metric": {"name": "exact_match", "split": "test"},
	 "record": {"model": "babbage", "shots": 5}, "value": 0.5}
]`

const testSchema = `
metrics:
  - name: exact_match
    display_name: Exact match
    short_display_name: EM
  - name: f1_score
    display_name: F1
`

func evalview(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	cmd := newCommand()
	var out, errOut bytes.Buffer
	cmd.Writer = &out
	cmd.ErrWriter = &errOut
	if err := cmd.Run(context.Background(), append([]string{"evalview"}, args...)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return out.String(), errOut.String()
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestText(t *testing.T) {
	input := writeFile(t, "results.json", testInput)
	stdout, _ := evalview(t, input)

	for _, want := range []string{
		"f1_score on test",
		"model:ada", "model:babbage",
		"geomean",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output does not contain %q:\n%s", want, stdout)
		}
	}
	// The shared shots attribute must not label any row.
	if strings.Contains(stdout, "shots") {
		t.Errorf("output contains common attribute shots:\n%s", stdout)
	}
}

func TestCSVWithSchema(t *testing.T) {
	input := writeFile(t, "results.json", testInput)
	schema := writeFile(t, "schema.yaml", testSchema)
	stdout, stderr := evalview(t, "-schema", schema, "-format", "csv", input)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), stdout)
	}
	// Schema puts exact_match first and renames the headers.
	if want := ",EM on test,F1 on test"; lines[0] != want {
		t.Errorf("header: got %q, want %q", lines[0], want)
	}
	if want := "model:ada,0.25,0.5"; lines[1] != want {
		t.Errorf("row 1: got %q, want %q", lines[1], want)
	}
	if stderr != "" {
		t.Errorf("unexpected warnings:\n%s", stderr)
	}
}

func TestRowKeys(t *testing.T) {
	input := writeFile(t, "results.json", `[
		{"metric": {"name": "em"}, "record": {"model": "ada", "seed": 1}, "value": 0.2},
		{"metric": {"name": "em"}, "record": {"model": "ada", "seed": 2}, "value": 0.4}
	]`)
	stdout, _ := evalview(t, "-row", "model", input)

	if !strings.Contains(stdout, "runs vary in seed") {
		t.Errorf("output does not warn about hidden seed attribute:\n%s", stdout)
	}
}

func TestBadInput(t *testing.T) {
	cmd := newCommand()
	var out, errOut bytes.Buffer
	cmd.Writer = &out
	cmd.ErrWriter = &errOut
	err := cmd.Run(context.Background(), []string{"evalview", "no-such-file.json"})
	if err == nil {
		t.Errorf("want error for missing input file")
	}
}

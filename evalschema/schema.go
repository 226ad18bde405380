// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalschema loads the display schema for evaluation results:
// which metrics, splits, and perturbations exist, what to call them,
// and the order to show them in.
//
// The schema is a YAML document listing descriptors per kind, in
// preferred display order:
//
//	metrics:
//	  - name: exact_match
//	    display_name: Exact match
//	    short_display_name: EM
//	    description: Fraction of instances matched exactly.
//	  - name: inference_time
//	    display_name: Inference time
//	    lower_is_better: true
//	splits:
//	  - name: valid
//	  - name: test
//	perturbations:
//	  - name: typo
//	    display_name: Typo noise
//
// The descriptor order feeds evalproc.SortByReference; the lookup
// side is exposed through the Resolver interface so consumers that
// only need naming take a capability, not this package's concrete
// type.
package evalschema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A FieldDescriptor describes how to present one named field: a
// metric, split, or perturbation.
type FieldDescriptor struct {
	// Key is the field's machine name, as it appears in result
	// data.
	Key string `yaml:"name"`

	// DisplayName is the human name. If empty, callers should
	// fall back to Key.
	DisplayName string `yaml:"display_name"`

	// ShortDisplayName is a compact form for column headers.
	ShortDisplayName string `yaml:"short_display_name"`

	// Description is a sentence or two for tooltips and legends.
	Description string `yaml:"description"`

	// LowerIsBetter reports whether smaller values of this metric
	// are better, e.g. for error rates and latencies.
	LowerIsBetter bool `yaml:"lower_is_better"`
}

// A Resolver maps a field's machine name to its descriptor. The
// second result reports whether the key is known; unknown keys
// resolve to the zero descriptor and callers fall back to the raw
// key.
type Resolver interface {
	Lookup(key string) (FieldDescriptor, bool)
}

// A Schema is a parsed display schema. The order of each descriptor
// list is the preferred display order of that kind.
type Schema struct {
	Metrics       []FieldDescriptor `yaml:"metrics"`
	Splits        []FieldDescriptor `yaml:"splits"`
	Perturbations []FieldDescriptor `yaml:"perturbations"`

	// byKey indexes all descriptor lists. It is built by Parse.
	byKey map[string]FieldDescriptor
}

// Parse parses a YAML display schema. Descriptors without a name, and
// two descriptors of the same kind sharing a name, are errors.
func Parse(data []byte) (*Schema, error) {
	s := new(Schema)
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	s.byKey = make(map[string]FieldDescriptor)
	for kind, fds := range map[string][]FieldDescriptor{
		"metrics":       s.Metrics,
		"splits":        s.Splits,
		"perturbations": s.Perturbations,
	} {
		seen := make(map[string]bool)
		for _, fd := range fds {
			if fd.Key == "" {
				return nil, fmt.Errorf("schema %s: descriptor without a name", kind)
			}
			if seen[fd.Key] {
				return nil, fmt.Errorf("schema %s: duplicate name %q", kind, fd.Key)
			}
			seen[fd.Key] = true
			s.byKey[fd.Key] = fd
		}
	}
	return s, nil
}

// ParseFile parses the YAML display schema at path.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Lookup implements Resolver over all descriptor kinds. If a metric
// and a perturbation share a name, the perturbation wins; result data
// keeps those namespaces apart in practice.
func (s *Schema) Lookup(key string) (FieldDescriptor, bool) {
	fd, ok := s.byKey[key]
	return fd, ok
}

// MetricOrder returns the metric names in preferred display order,
// for use as an evalproc.SortByReference reference.
func (s *Schema) MetricOrder() []string {
	return keys(s.Metrics)
}

// SplitOrder returns the split names in preferred display order.
func (s *Schema) SplitOrder() []string {
	return keys(s.Splits)
}

// PerturbationOrder returns the perturbation names in preferred
// display order.
func (s *Schema) PerturbationOrder() []string {
	return keys(s.Perturbations)
}

func keys(fds []FieldDescriptor) []string {
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Key
	}
	return out
}

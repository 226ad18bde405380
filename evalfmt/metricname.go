// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalfmt

import "strings"

// A Perturbation describes a named transformation applied to
// evaluation inputs: a "name" field plus optional parameters. A nil
// *Perturbation denotes the unperturbed ("original") condition.
type Perturbation struct {
	Record
}

// NewPerturbation returns a Perturbation with the given name and no
// parameters.
func NewPerturbation(name string) *Perturbation {
	p := new(Perturbation)
	p.Set("name", String(name))
	return p
}

// Name returns the perturbation's name, or "" for the unperturbed
// condition.
func (p *Perturbation) Name() string {
	if p == nil {
		return ""
	}
	v, _ := p.Get("name")
	return v.Str()
}

// PerturbationEquals reports whether p1 and p2 describe the same
// perturbation. Two absent perturbations are equal; an absent
// perturbation never equals a present one; two present perturbations
// are equal iff their canonical serializations match exactly, so the
// comparison is sensitive to parameter order.
func PerturbationEquals(p1, p2 *Perturbation) bool {
	if p1 == nil || p2 == nil {
		return p1 == nil && p2 == nil
	}
	return p1.Canon() == p2.Canon()
}

// A MetricName is the composite key identifying one measured
// quantity: a metric name, an optional evaluation split and
// sub-split, and an optional perturbation.
type MetricName struct {
	Name         string
	Split        string
	SubSplit     string
	Perturbation *Perturbation
}

// Equal reports whether m and o identify the same quantity. All four
// components must match; the perturbations are compared with
// PerturbationEquals. There is no partial or case-insensitive mode.
func (m MetricName) Equal(o MetricName) bool {
	return m.Name == o.Name &&
		m.Split == o.Split &&
		m.SubSplit == o.SubSplit &&
		PerturbationEquals(m.Perturbation, o.Perturbation)
}

// String returns a compact form of m: the name, followed by the split
// and sub-split separated by slashes, followed by the perturbation
// name in brackets. Empty components are omitted.
func (m MetricName) String() string {
	buf := new(strings.Builder)
	buf.WriteString(m.Name)
	if m.Split != "" {
		buf.WriteByte('/')
		buf.WriteString(m.Split)
	}
	if m.SubSplit != "" {
		buf.WriteByte('/')
		buf.WriteString(m.SubSplit)
	}
	if m.Perturbation != nil {
		buf.WriteByte('[')
		buf.WriteString(m.Perturbation.Name())
		buf.WriteByte(']')
	}
	return buf.String()
}

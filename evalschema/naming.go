// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalschema

import (
	"strings"

	"github.com/evalview/evalview/evalfmt"
)

// DisplayName returns the human form of metric key m, resolving the
// metric and perturbation names through r: the metric's display name,
// "on <split>[/<sub_split>]" if a split is set, and the perturbation
// display name in parentheses if one is set. A nil Resolver or an
// unknown key falls back to the raw name.
func DisplayName(r Resolver, m evalfmt.MetricName) string {
	return metricName(r, m, displayName(r, m.Name))
}

// HeaderName is DisplayName using the metric's short display name
// where the schema provides one, for compact column headers.
func HeaderName(r Resolver, m evalfmt.MetricName) string {
	name := displayName(r, m.Name)
	if r != nil {
		if fd, ok := r.Lookup(m.Name); ok && fd.ShortDisplayName != "" {
			name = fd.ShortDisplayName
		}
	}
	return metricName(r, m, name)
}

// Describe returns the schema description of key, or "" if the key is
// unknown.
func Describe(r Resolver, key string) string {
	if r == nil {
		return ""
	}
	fd, ok := r.Lookup(key)
	if !ok {
		return ""
	}
	return fd.Description
}

func metricName(r Resolver, m evalfmt.MetricName, name string) string {
	buf := new(strings.Builder)
	buf.WriteString(name)
	if m.Split != "" {
		buf.WriteString(" on ")
		buf.WriteString(displayName(r, m.Split))
		if m.SubSplit != "" {
			buf.WriteByte('/')
			buf.WriteString(m.SubSplit)
		}
	}
	if m.Perturbation != nil {
		buf.WriteString(" (")
		buf.WriteString(displayName(r, m.Perturbation.Name()))
		buf.WriteByte(')')
	}
	return buf.String()
}

func displayName(r Resolver, key string) string {
	if r != nil {
		if fd, ok := r.Lookup(key); ok && fd.DisplayName != "" {
			return fd.DisplayName
		}
	}
	return key
}

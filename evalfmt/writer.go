// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalfmt

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// This file implements the canonical serialization backing
// Value.Canon and Record.Canon. The form is JSON-shaped: null, true,
// false, shortest-form numbers, quoted strings, [..] lists, and {..}
// maps with keys in stored order. It exists for comparison, so the
// only property that matters is that two values serialize to the same
// bytes iff they should compare equal; it is not an interchange
// format. Non-finite numbers, which JSON cannot represent, serialize
// as NaN, Inf, and -Inf.

func (v Value) appendCanon(buf []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindNumber:
		return appendNumber(buf, v.num)
	case KindString:
		return appendQuoted(buf, v.str)
	case KindList:
		buf = append(buf, '[')
		for i, e := range v.list {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = e.appendCanon(buf)
		}
		return append(buf, ']')
	case KindMap:
		return v.rec.appendCanon(buf)
	}
	panic("invalid Value kind")
}

func (r *Record) appendCanon(buf []byte) []byte {
	buf = append(buf, '{')
	if r != nil {
		for i, f := range r.Fields {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendQuoted(buf, f.Key)
			buf = append(buf, ':')
			buf = f.Value.appendCanon(buf)
		}
	}
	return append(buf, '}')
}

func appendNumber(buf []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(buf, "NaN"...)
	case math.IsInf(f, 1):
		return append(buf, "Inf"...)
	case math.IsInf(f, -1):
		return append(buf, "-Inf"...)
	}
	return strconv.AppendFloat(buf, f, 'g', -1, 64)
}

const hex = "0123456789abcdef"

// appendQuoted appends s as a JSON-style quoted string. Invalid UTF-8
// is replaced with U+FFFD, so two strings with distinct invalid bytes
// may serialize equally; callers comparing such strings should use
// Value.Equal instead.
func appendQuoted(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for _, r := range s {
		switch r {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if r < 0x20 {
				buf = append(buf, '\\', 'u', '0', '0', hex[r>>4], hex[r&0xf])
			} else {
				buf = utf8.AppendRune(buf, r)
			}
		}
	}
	return append(buf, '"')
}

// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalfmt provides the data model for evaluation results: a
// tagged value type, ordered attribute records, and the composite
// metric keys that identify one measured quantity.
//
// The reader and writer are structured around an ordered map
// representation because result records compare by their canonical
// serialization, and serialization order matters for that comparison.
// Callers that need stable equality must therefore supply records
// with a stable key order; the Decoder preserves the key order of its
// JSON input.
//
// This package is designed to be used with the higher-level packages
// evalproc, evalschema, and evaltab.
package evalfmt

// A Kind discriminates the representations of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the name of Kind k.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "invalid"
}

// A Value is a single serializable attribute value: null, a bool, a
// number, a string, a list of Values, or an ordered map of string
// keys to Values.
//
// The zero Value is null. Values are small and intended to be passed
// by value; the list and map representations share underlying storage
// with the Value they were constructed from.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	list []Value
	rec  *Record
}

// Null returns the null Value. It is equivalent to the zero Value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Number returns a numeric Value.
func Number(v float64) Value {
	return Value{kind: KindNumber, num: v}
}

// String returns a string Value.
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// List returns a list Value backed by vs. The caller must not modify
// vs after the call.
func List(vs ...Value) Value {
	return Value{kind: KindList, list: vs}
}

// Map returns a map Value backed by Record r. A nil Record is treated
// as an empty map.
func Map(r *Record) Value {
	if r == nil {
		r = new(Record)
	}
	return Value{kind: KindMap, rec: r}
}

// Kind returns the kind of Value v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean represented by v, or false if v is not a
// bool.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// Number returns the number represented by v, or 0 if v is not a
// number.
func (v Value) Number() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Str returns the string represented by v, or "" if v is not a
// string.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// List returns the elements of a list Value. It returns nil if v is
// not a list. The caller must not modify the returned slice.
func (v Value) List() []Value {
	return v.list
}

// Record returns the Record backing a map Value, or nil if v is not a
// map.
func (v Value) Record() *Record {
	return v.rec
}

// Equal reports whether v and o are structurally equal: same kind and
// same contents, recursively. For maps this comparison is sensitive
// to key order, matching the canonical serialization: two maps with
// the same entries in a different order are not Equal. This is the
// strict variant of the equality used throughout this module; Canon
// is the serialization-based one. The two agree on all values built
// from valid UTF-8 strings; strings with invalid bytes serialize with
// U+FFFD replacements, so distinct invalid strings can be canonically
// equal while remaining unequal here.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		// NaN never equals itself, including here.
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.rec.Equal(o.rec)
	}
	return false
}

// Canon returns the canonical serialization of v. Two Values are
// canonically equal iff their Canon strings are byte-equal. The form
// is JSON-shaped, with map keys in stored order.
func (v Value) Canon() string {
	return string(v.appendCanon(nil))
}

// String returns the canonical serialization of v.
func (v Value) String() string {
	return v.Canon()
}

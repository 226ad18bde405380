// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalfmt

// A Record is an ordered attribute map from string keys to Values. It
// represents one result row's source data, such as a scenario's
// argument set.
//
// Records are designed to be mutated in place and reused to reduce
// allocation.
type Record struct {
	// Fields is the ordered key/value pairs of this record.
	//
	// This slice is mutable, as are the Values in the slice.
	// Record internally maintains an index of the keys of this
	// slice, so callers must use Set and Delete to add or delete
	// keys, but may modify values in place. There is one exception
	// to this: for convenience, new Records can be initialized
	// directly, e.g., using a struct literal.
	Fields []Field

	// keyPos maps from Field.Key to index in Fields. This may be
	// nil, which indicates the index needs to be constructed.
	keyPos map[string]int
}

// A Field is a single key/value attribute pair.
type Field struct {
	Key   string
	Value Value
}

// NewRecord returns a Record with the given fields, in order. It
// panics if two fields have the same key.
func NewRecord(fields ...Field) *Record {
	r := new(Record)
	for _, f := range fields {
		if _, ok := r.Index(f.Key); ok {
			panic("duplicate record key " + f.Key)
		}
		r.Set(f.Key, f.Value)
	}
	return r
}

// Len returns the number of fields in r. A nil Record has no fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Fields)
}

// Set sets key to value, overriding or adding the field as
// necessary. Setting the null Value is allowed and distinct from
// deleting the key.
func (r *Record) Set(key string, value Value) {
	f := r.ensure(key)
	f.Value = value
}

func (r *Record) ensure(key string) *Field {
	pos, ok := r.Index(key)
	if ok {
		return &r.Fields[pos]
	}
	r.keyPos[key] = len(r.Fields)
	r.Fields = append(r.Fields, Field{Key: key})
	return &r.Fields[len(r.Fields)-1]
}

// Delete removes key from r. To keep the field order deterministic,
// it swaps the deleted field with the final one rather than shifting
// the tail.
func (r *Record) Delete(key string) {
	pos, ok := r.Index(key)
	if !ok {
		return
	}
	f := &r.Fields[pos]
	f2 := &r.Fields[len(r.Fields)-1]
	*f, *f2 = *f2, *f
	r.keyPos[f.Key] = pos
	r.Fields = r.Fields[:len(r.Fields)-1]
	delete(r.keyPos, key)
}

// Get returns the value at key and whether key is present. A nil
// Record has no keys.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	pos, ok := r.Index(key)
	if !ok {
		return Value{}, false
	}
	return r.Fields[pos].Value, true
}

// Index returns the index in r.Fields of key.
func (r *Record) Index(key string) (pos int, ok bool) {
	if r.keyPos == nil {
		// This is a fresh Record. Construct the index.
		r.keyPos = make(map[string]int)
		for i, f := range r.Fields {
			r.keyPos[f.Key] = i
		}
	}

	pos, ok = r.keyPos[key]
	return
}

// Keys returns the keys of r in field order. The returned slice is
// freshly allocated.
func (r *Record) Keys() []string {
	if r.Len() == 0 {
		return nil
	}
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Clone makes a copy of Record that shares no mutable state with r.
// Values are shared, since a Value's contents are only reachable for
// mutation through its backing Record, which Clone copies.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	r2 := &Record{Fields: make([]Field, len(r.Fields))}
	for i, f := range r.Fields {
		r2.Fields[i] = Field{f.Key, f.Value.clone()}
	}
	return r2
}

func (v Value) clone() Value {
	switch v.kind {
	case KindList:
		list := make([]Value, len(v.list))
		for i := range v.list {
			list[i] = v.list[i].clone()
		}
		return Value{kind: KindList, list: list}
	case KindMap:
		return Value{kind: KindMap, rec: v.rec.Clone()}
	}
	return v
}

// Equal reports whether r and o have equal keys, in the same order,
// with structurally equal values. Two nil or empty Records are equal.
func (r *Record) Equal(o *Record) bool {
	if r.Len() != o.Len() {
		return false
	}
	if r == nil {
		return true
	}
	for i := range r.Fields {
		f, g := r.Fields[i], o.Fields[i]
		if f.Key != g.Key || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}

// Canon returns the canonical serialization of r as a map value. Two
// Records are canonically equal iff their Canon strings are
// byte-equal; this is the equality used when deciding whether a field
// is common across a set of records.
func (r *Record) Canon() string {
	return string(r.appendCanon(nil))
}

// String returns the canonical serialization of r.
func (r *Record) String() string {
	return r.Canon()
}

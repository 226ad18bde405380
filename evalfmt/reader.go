// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// UnmarshalValue parses a single JSON document into a Value. Unlike
// encoding/json's map decoding, object key order is preserved, which
// matters because Values compare by their canonical serialization. A
// duplicated object key keeps its first position and its last value.
func UnmarshalValue(data []byte) (Value, error) {
	return ReadValue(bytes.NewReader(data))
}

// ReadValue parses one JSON document from r into a Value, preserving
// object key order.
func ReadValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON document")
	}
	return v, nil
}

// UnmarshalRecord parses a JSON object into a Record, preserving key
// order. It returns an error if the document is not an object.
func UnmarshalRecord(data []byte) (*Record, error) {
	v, err := UnmarshalValue(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("record must be a JSON object, got %s", v.Kind())
	}
	return v.Record(), nil
}

func readValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			var list []Value
			for dec.More() {
				e, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				list = append(list, e)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(list...), nil
		case '{':
			rec := new(Record)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				v, err := readValue(dec)
				if err != nil {
					return Value{}, err
				}
				rec.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(rec), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// An Entry is one measurement from a result file: a value identified
// by a MetricName and the record describing the run that produced it.
type Entry struct {
	Metric MetricName
	Record *Record
	Value  float64
}

// ReadEntries parses a JSON result file from r: an array of objects
// with "metric", "record", and "value" keys. Keys other than these
// are ignored so files can carry extra annotation.
func ReadEntries(r io.Reader) ([]Entry, error) {
	doc, err := ReadValue(r)
	if err != nil {
		return nil, err
	}
	if doc.Kind() != KindList {
		return nil, fmt.Errorf("result file must be a JSON array, got %s", doc.Kind())
	}
	var entries []Entry
	for i, ev := range doc.List() {
		e, err := entryFromValue(ev)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromValue(v Value) (Entry, error) {
	if v.Kind() != KindMap {
		return Entry{}, fmt.Errorf("entry must be an object, got %s", v.Kind())
	}
	rec := v.Record()

	mv, ok := rec.Get("metric")
	if !ok {
		return Entry{}, fmt.Errorf("entry has no metric")
	}
	metric, err := metricNameFromValue(mv)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	e.Metric = metric
	if rv, ok := rec.Get("record"); ok {
		if rv.Kind() != KindMap {
			return Entry{}, fmt.Errorf("record must be an object, got %s", rv.Kind())
		}
		e.Record = rv.Record()
	} else {
		e.Record = new(Record)
	}
	vv, ok := rec.Get("value")
	if !ok || vv.Kind() != KindNumber {
		return Entry{}, fmt.Errorf("entry has no numeric value")
	}
	e.Value = vv.Number()
	return e, nil
}

func metricNameFromValue(v Value) (MetricName, error) {
	if v.Kind() != KindMap {
		return MetricName{}, fmt.Errorf("metric must be an object, got %s", v.Kind())
	}
	rec := v.Record()
	var m MetricName
	if nv, ok := rec.Get("name"); ok {
		m.Name = nv.Str()
	}
	if m.Name == "" {
		return MetricName{}, fmt.Errorf("metric has no name")
	}
	if sv, ok := rec.Get("split"); ok {
		m.Split = sv.Str()
	}
	if sv, ok := rec.Get("sub_split"); ok {
		m.SubSplit = sv.Str()
	}
	if pv, ok := rec.Get("perturbation"); ok && !pv.IsNull() {
		if pv.Kind() != KindMap {
			return MetricName{}, fmt.Errorf("perturbation must be an object, got %s", pv.Kind())
		}
		p := new(Perturbation)
		p.Record = *pv.Record()
		if p.Name() == "" {
			return MetricName{}, fmt.Errorf("perturbation has no name")
		}
		m.Perturbation = p
	}
	return m, nil
}

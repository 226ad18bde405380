// Copyright 2023 The evalview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalfmt

import (
	"math"
	"testing"
)

func TestCanon(t *testing.T) {
	check := func(v Value, want string) {
		t.Helper()
		if got := v.Canon(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}

	check(Null(), "null")
	check(Value{}, "null")
	check(Bool(true), "true")
	check(Bool(false), "false")
	check(Number(1), "1")
	check(Number(1.5), "1.5")
	check(Number(-0.25), "-0.25")
	check(Number(1e21), "1e+21")
	check(Number(math.Inf(-1)), "-Inf")
	check(String("robustness"), `"robustness"`)
	check(String("a\"b\\c\n"), `"a\"b\\c\n"`)
	check(String("\x01"), `"\u0001"`)
	check(List(), "[]")
	check(List(Number(1), String("x"), Null()), `[1,"x",null]`)
	check(Map(nil), "{}")
	check(Map(NewRecord(
		Field{"name", String("typo")},
		Field{"prob", Number(0.1)},
	)), `{"name":"typo","prob":0.1}`)

	// Nesting.
	check(Map(NewRecord(
		Field{"args", Map(NewRecord(Field{"k", Number(4)}))},
		Field{"tags", List(String("a"), String("b"))},
	)), `{"args":{"k":4},"tags":["a","b"]}`)
}

func TestValueEqual(t *testing.T) {
	check := func(a, b Value, want bool) {
		t.Helper()
		if got := a.Equal(b); got != want {
			t.Errorf("%s == %s: got %v, want %v", a, b, got, want)
		}
		// Equality is symmetric.
		if got := b.Equal(a); got != want {
			t.Errorf("%s == %s: got %v, want %v", b, a, got, want)
		}
	}

	check(Null(), Null(), true)
	check(Null(), Bool(false), false)
	check(Bool(true), Bool(true), true)
	check(Number(1), Number(1), true)
	check(Number(1), Number(2), false)
	check(Number(1), String("1"), false)
	check(String("x"), String("x"), true)
	check(List(Number(1)), List(Number(1)), true)
	check(List(Number(1)), List(Number(1), Number(2)), false)

	m1 := Map(NewRecord(Field{"a", Number(1)}, Field{"b", Number(2)}))
	m2 := Map(NewRecord(Field{"a", Number(1)}, Field{"b", Number(2)}))
	m3 := Map(NewRecord(Field{"b", Number(2)}, Field{"a", Number(1)}))
	check(m1, m2, true)
	// Key order is part of the identity.
	check(m1, m3, false)
}

func TestInvalidUTF8(t *testing.T) {
	// Invalid bytes serialize as U+FFFD replacements, so distinct
	// invalid strings are canonically equal but structurally unequal.
	a, b := String("\xff"), String("\xfe")
	if a.Canon() != b.Canon() {
		t.Errorf("canon differs: %s vs %s", a.Canon(), b.Canon())
	}
	if a.Equal(b) {
		t.Errorf("distinct invalid strings compare equal")
	}
}

func TestCanonMatchesEqual(t *testing.T) {
	// The fast (serialization) and strict (recursive) equality
	// must agree on representable values.
	vals := []Value{
		Null(),
		Bool(true),
		Number(3.25),
		String("x"),
		List(Number(1), Map(NewRecord(Field{"k", String("v")}))),
		Map(NewRecord(Field{"a", Number(1)}, Field{"b", Null()})),
		Map(NewRecord(Field{"b", Null()}, Field{"a", Number(1)})),
	}
	for _, a := range vals {
		for _, b := range vals {
			canonEq := a.Canon() == b.Canon()
			if structEq := a.Equal(b); canonEq != structEq {
				t.Errorf("%s vs %s: Canon equality %v, Equal %v", a, b, canonEq, structEq)
			}
		}
	}
}

/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package msexp

import "testing"

func TestTreeEqualCongruence(t *testing.T) {
	a := NewArena()

	cases := []struct {
		name  string
		x, y  *Tree
		equal bool
	}{
		{"nil singletons", a.Nil(), a.Nil(), true},
		{"unit singletons", a.Unit(), a.Unit(), true},
		{"nil vs unit", a.Nil(), a.Unit(), false},
		{"same symbol, distinct allocations", a.Symbol("x"), a.Symbol("x"), true},
		{"different symbols", a.Symbol("x"), a.Symbol("y"), false},
		{"same string", a.String("hi"), a.String("hi"), true},
		{"same nat64", a.Nat64(42), a.Nat64(42), true},
		{"different nat64", a.Nat64(42), a.Nat64(43), false},
		{"same bool", a.Bool(true), a.Bool(true), true},
		{"different bool", a.Bool(true), a.Bool(false), false},
		{"nat64 vs string, same text", a.Nat64(1), a.String("1"), false},
		{
			"structurally identical lists, distinct allocations",
			a.List(a.Symbol("a"), a.Nat64(1), a.String("s")),
			a.List(a.Symbol("a"), a.Nat64(1), a.String("s")),
			true,
		},
		{
			"lists differing in one element",
			a.List(a.Symbol("a"), a.Nat64(1)),
			a.List(a.Symbol("a"), a.Nat64(2)),
			false,
		},
		{
			"lists differing in length",
			a.List(a.Symbol("a")),
			a.List(a.Symbol("a"), a.Symbol("b")),
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.x.Equal(c.y); got != c.equal {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.x, c.y, got, c.equal)
			}
			if got := c.y.Equal(c.x); got != c.equal {
				t.Errorf("Equal is not symmetric for %v, %v", c.x, c.y)
			}
		})
	}
}

func TestArenaListBuildsRightNestedConsChain(t *testing.T) {
	a := NewArena()
	lst := a.List(a.Nat64(1), a.Nat64(2), a.Nat64(3))

	if lst.Tag != TagCons || lst.Head.Nat != 1 {
		t.Fatalf("expected head 1, got %v", lst)
	}
	if lst.Tail.Head.Nat != 2 || lst.Tail.Tail.Head.Nat != 3 {
		t.Fatalf("expected (1 2 3), got %v", lst)
	}
	if lst.Tail.Tail.Tail.Tag != TagNil {
		t.Fatalf("expected list to terminate in Nil, got %v", lst.Tail.Tail.Tail)
	}
}

func TestExpectHelpersPanicOnWrongTag(t *testing.T) {
	a := NewArena()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		pe, ok := r.(*PartialEvalError)
		if !ok {
			t.Fatalf("expected *PartialEvalError, got %T", r)
		}
		if pe.At == nil || pe.At.Tag != TagSymbol {
			t.Fatalf("expected the offending symbol tree to be attached, got %v", pe.At)
		}
	}()
	expectNat64(a.Symbol("x"), "test")
}

// TestSingletonIdentityPreserved checks invariant "two sentinel singletons
// (Nil, Unit) are shared by pointer": repeated calls to Arena.Nil()/Unit()
// and values flowing through Eval (e.g. a `cond` with no false-branch,
// which returns Unit) must all yield the exact same pointer, not merely an
// equal value.
func TestSingletonIdentityPreserved(t *testing.T) {
	in := New(Options{})
	a := in.arena

	if a.Nil() != a.Nil() {
		t.Fatal("expected repeated Nil() calls to return the same pointer")
	}
	if a.Unit() != a.Unit() {
		t.Fatal("expected repeated Unit() calls to return the same pointer")
	}

	got := in.EvalSource("(cond (eq 1 2) 1)")
	if got != a.Unit() {
		t.Fatalf("expected a falsy cond with no false-branch to return the Unit singleton, got %v", got)
	}
}

func TestExpectConsReturnsTreeUnchanged(t *testing.T) {
	a := NewArena()
	lst := a.Cons(a.Nat64(1), a.Nil())
	got := expectCons(lst, "test")
	if got != lst {
		t.Fatalf("expectCons should return its argument, got %v", got)
	}
}

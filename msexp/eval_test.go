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

import (
	"strings"
	"testing"
)

func TestEvalSourceArithmetic(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource("(add 2 3)")
	if got.Tag != TagNat64 || got.Nat != 5 {
		t.Fatalf("(add 2 3) = %v, want 5", got)
	}
}

func TestEvalSourceLetAndMul(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource("(let ((x 20) (y 10)) (mul x y))")
	if got.Tag != TagNat64 || got.Nat != 200 {
		t.Fatalf("let/mul = %v, want 200", got)
	}
}

// TestEvalSourceLetrecFactorial is the mandated factorial scenario, fed
// verbatim: (letrec ((f (lambda (n) (cond (eq n 0) 1 (mul n (f (sub n
// 1))))))) (f 5)) must evaluate to 120.
func TestEvalSourceLetrecFactorial(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource(
		"(letrec ((f (lambda (n) (cond (eq n 0) 1 (mul n (f (sub n 1))))))) (f 5))",
	)
	if got.Tag != TagNat64 || got.Nat != 120 {
		t.Fatalf("letrec factorial = %v, want 120", got)
	}
}

func TestEvalSourceDefineMacroSwap(t *testing.T) {
	in := New(Options{})
	in.EvalSource("(define_macro swap (a b) (list (quote list) b a))")
	got := in.EvalSource("(swap 1 2)")
	want := in.arena.List(in.arena.Nat64(2), in.arena.Nat64(1))
	if !got.Equal(want) {
		t.Fatalf("(swap 1 2) = %v, want %v", got, want)
	}
}

func TestEvalSourceQuasiquote(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource("(let ((x (add 1 2))) (quote (a (unquote x) c)))")
	want := in.arena.List(in.arena.Symbol("a"), in.arena.Nat64(3), in.arena.Symbol("c"))
	if !got.Equal(want) {
		t.Fatalf("quote/unquote splice result = %v, want %v", got, want)
	}
}

func TestEvalSourceMatchCons(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource("(match (cons 1 2) ((h . t) h))")
	if got.Tag != TagNat64 || got.Nat != 1 {
		t.Fatalf("match cons = %v, want 1", got)
	}
}

func TestEvalSourceUnboundSymbolNamesIt(t *testing.T) {
	in := New(Options{})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an unbound symbol")
		}
		err, ok := r.(*PartialEvalError)
		if !ok {
			t.Fatalf("expected *PartialEvalError, got %T: %v", r, r)
		}
		if !strings.Contains(err.Message, "definitely_unbound_name") {
			t.Fatalf("expected the error to name the unbound symbol, got %q", err.Message)
		}
	}()
	in.EvalSource("definitely_unbound_name")
}

func TestEvalSourceAmbiguousGrammarFailsResolve(t *testing.T) {
	in := New(Options{})
	a := in.arena

	lhs := func(name string, prec uint64) *Tree { return a.List(a.Symbol(name), a.Nat64(prec)) }
	rhsSym := func(name string, prec uint64) *Tree { return a.List(a.Symbol(name), a.Nat64(prec)) }

	patterns := a.List(
		a.List(a.Symbol("ws'"), lhs("_", 0),
			a.List(a.Symbol("plus"), a.List(a.Symbol("char"), a.String(" \t\r\n")))),
		a.List(a.Symbol("symbol'"), lhs("tree", 0),
			a.List(a.Symbol("plus"), a.List(a.Symbol("except"), a.String(" \t\r\n")))),
	)

	// Three distinct rules all producing the start symbol from the same
	// single "tree"-category terminal: every symbol-token statement now has
	// three equally valid derivations.
	rhsList := a.List(rhsSym("tree", 0))
	rules := a.List(
		a.List(a.Symbol("id'"), lhs("_", 0), rhsList),
		a.List(a.Symbol("path_a"), lhs("_", 0), rhsList),
		a.List(a.Symbol("path_b"), lhs("_", 0), rhsList),
	)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an ambiguous grammar")
		}
		re, ok := r.(*ResolveError)
		if !ok {
			t.Fatalf("expected *ResolveError, got %T: %v", r, r)
		}
		if !re.Ambiguous {
			t.Fatalf("expected Ambiguous to be true, got %v", re)
		}
		if len(re.Candidates) < 2 {
			t.Fatalf("expected at least two competing candidates, got %d", len(re.Candidates))
		}
	}()
	in.setSyntax(patterns, rules)
	in.EvalSource("hello")
}

func TestEvalTailCallDoesNotGrowStack(t *testing.T) {
	in := New(Options{})
	got := in.EvalSource(
		"(letrec ((loop (lambda (n acc) (cond (eq n 0) acc (loop (sub n 1) (add acc 1)))))) (loop 100000 0))",
	)
	if got.Tag != TagNat64 || got.Nat != 100000 {
		t.Fatalf("tail-recursive loop to 100000 = %v, want 100000", got)
	}
}

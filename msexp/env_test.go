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

func TestLookupShadowing(t *testing.T) {
	in := New(Options{})
	env := in.globalEnv
	env = in.extend(env, "x", in.arena.Nat64(1))
	env = in.extend(env, "x", in.arena.Nat64(2))

	got := in.lookup(env, "x")
	if got == nil || got.Nat != 2 {
		t.Fatalf("expected nearest binding (2) to shadow the outer one, got %v", got)
	}
}

func TestLookupUnboundReturnsNil(t *testing.T) {
	in := New(Options{})
	if got := in.lookup(in.globalEnv, "does-not-exist"); got != nil {
		t.Fatalf("expected nil for an unbound symbol, got %v", got)
	}
}

func TestSetBindingFindsNearestEnclosing(t *testing.T) {
	in := New(Options{})
	outer := in.extend(in.globalEnv, "x", in.arena.Nat64(1))
	inner := in.extend(outer, "y", in.arena.Nat64(99))

	if ok := setBinding(inner, "x", in.arena.Nat64(7)); !ok {
		t.Fatal("expected setBinding to find x in the outer frame")
	}
	if got := in.lookup(inner, "x"); got == nil || got.Nat != 7 {
		t.Fatalf("expected x to now be 7, got %v", got)
	}
}

func TestSetBindingUnboundReturnsFalse(t *testing.T) {
	in := New(Options{})
	if ok := setBinding(in.globalEnv, "never-bound", in.arena.Nat64(1)); ok {
		t.Fatal("expected setBinding to report false for an unbound symbol")
	}
}

func TestGlobalSymbolIndexSuggestsNearestPrefix(t *testing.T) {
	idx := newGlobalSymbolIndex()
	idx.add("apple")
	idx.add("apply")
	idx.add("banana")

	got := idx.suggest("app")
	if got != "apple" && got != "apply" {
		t.Fatalf("expected a name sharing the 'a' prefix, got %q", got)
	}
	if got := idx.suggest("zzz"); got != "" {
		t.Fatalf("expected no suggestion for an unrelated prefix, got %q", got)
	}
}

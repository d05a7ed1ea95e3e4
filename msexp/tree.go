/*
Copyright (C) 2023  Carl-Philip Hänsch

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

import "fmt"

// Tag discriminates the variant held by a Tree. Every Tree value carries
// exactly one of these; the payload fields that do not apply to the active
// Tag are left zero.
type Tag uint8

const (
	TagNil Tag = iota
	TagCons
	TagSymbol
	TagString
	TagNat64
	TagBool
	TagUnit
	TagClosure
	TagPrim
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagCons:
		return "cons"
	case TagSymbol:
		return "symbol"
	case TagString:
		return "string"
	case TagNat64:
		return "nat64"
	case TagBool:
		return "bool"
	case TagUnit:
		return "unit"
	case TagClosure:
		return "closure"
	case TagPrim:
		return "prim"
	default:
		return "?"
	}
}

// Tree is the universal tagged value of the interpreter: input text, parsed
// program, expanded program, environments, and evaluation results are all
// trees built from these nine variants (spec §3). Every Tree is owned by an
// Arena and lives for the arena's entire lifetime; *Tree pointers handed out
// by an Arena never move and are never freed individually.
type Tree struct {
	Tag Tag

	// TagCons
	Head, Tail *Tree

	// TagSymbol, TagString
	Str string

	// TagNat64
	Nat uint64

	// TagBool
	Flag bool

	// TagClosure
	Env, Formal, Body *Tree

	// TagPrim
	PrimID int
}

// IsList reports whether e is Nil or Cons — the two tags every proper list
// terminates or continues with (invariant I1).
func (e *Tree) IsList() bool {
	return e.Tag == TagNil || e.Tag == TagCons
}

// Equal implements the structural, deep equality required by spec §3: two
// distinct allocations with identical shape compare equal, including the
// Nil/Unit singletons compared by shape rather than by pointer.
func (a *Tree) Equal(b *Tree) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNil, TagUnit:
		return true
	case TagCons:
		return a.Head.Equal(b.Head) && a.Tail.Equal(b.Tail)
	case TagSymbol, TagString:
		return a.Str == b.Str
	case TagNat64:
		return a.Nat == b.Nat
	case TagBool:
		return a.Flag == b.Flag
	case TagClosure:
		return a.Env.Equal(b.Env) && a.Formal.Equal(b.Formal) && a.Body.Equal(b.Body)
	case TagPrim:
		return a.PrimID == b.PrimID
	default:
		panic(fmt.Sprintf("msexp: unknown tag %v in Equal", a.Tag))
	}
}

// expect* helpers centralize the "type mismatch" EvalError case (spec §7,
// kind 3) so every primitive and core routine reports failures the same
// way, mirroring the teacher's expect<T> helper in
// original_source/src/eval/evaluator.cpp. Each takes the offending tree plus
// a short description of what was being looked for, and returns the tree
// itself (still typed *Tree) so callers chain straight into .Head/.Str/.Nat/
// .Flag at the call site.

func expectCons(e *Tree, what string) *Tree {
	if e.Tag != TagCons {
		panic(&PartialEvalError{Message: what + ": expected a non-empty list, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectSymbol(e *Tree, what string) *Tree {
	if e.Tag != TagSymbol {
		panic(&PartialEvalError{Message: what + ": expected a symbol, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectString(e *Tree, what string) *Tree {
	if e.Tag != TagString {
		panic(&PartialEvalError{Message: what + ": expected a string, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectNat64(e *Tree, what string) *Tree {
	if e.Tag != TagNat64 {
		panic(&PartialEvalError{Message: what + ": expected a nat64, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectBool(e *Tree, what string) *Tree {
	if e.Tag != TagBool {
		panic(&PartialEvalError{Message: what + ": expected a bool, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectClosure(e *Tree, what string) *Tree {
	if e.Tag != TagClosure {
		panic(&PartialEvalError{Message: what + ": expected a closure, got " + e.Tag.String(), At: e})
	}
	return e
}

func expectNil(e *Tree, what string) *Tree {
	if e.Tag != TagNil {
		panic(&PartialEvalError{Message: what + ": expected the end of a list, got " + e.Tag.String(), At: e})
	}
	return e
}

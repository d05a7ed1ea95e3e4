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

import "github.com/google/btree"

// An Environment is a Tree: a cons-list of entries, each entry itself a
// two-element list (symbol value) — spec §3. This is deliberately a list
// rather than a map (design note "Environments as functional lists") so
// that `set` can locate and overwrite one specific binding cell, and so
// `let`-style shadowing by consing a new frame is O(1).

// extend conses a new (symbol value) frame onto env.
func (in *Interpreter) extend(env *Tree, sym string, value *Tree) *Tree {
	a := in.arena
	entry := a.Cons(a.Symbol(sym), a.Cons(value, a.Nil()))
	return a.Cons(entry, env)
}

// lookup walks the spine of env and returns the bound value for sym, or nil
// if unbound or bound to Unit (spec §3: "Unit as a binding's value means
// declared but not yet assigned").
func (in *Interpreter) lookup(env *Tree, sym string) *Tree {
	for it := env; it.Tag == TagCons; it = it.Tail {
		entry := it.Head
		if entry.Tag != TagCons {
			continue
		}
		lhs, t := entry.Head, entry.Tail
		if t.Tag != TagCons {
			continue
		}
		rhs := t.Head
		if lhs.Tag == TagSymbol && lhs.Str == sym {
			if rhs.Tag == TagUnit {
				return nil
			}
			return rhs
		}
	}
	return nil
}

// setBinding finds the nearest enclosing binding for sym and overwrites its
// value cell in place (this is why an Environment must be a cons-list, not
// an immutable map: `set`'s contract is "assign an existing binding",
// which needs a mutable cell to land in). Returns false if sym is unbound.
func setBinding(env *Tree, sym string, value *Tree) bool {
	for it := env; it.Tag == TagCons; it = it.Tail {
		entry := it.Head
		if entry.Tag != TagCons {
			continue
		}
		lhs, t := entry.Head, entry.Tail
		if t.Tag != TagCons {
			continue
		}
		if lhs.Tag == TagSymbol && lhs.Str == sym {
			t.Head = value
			return true
		}
	}
	return false
}

// globalSymbolIndex keeps a btree.BTreeG of every name currently bound at
// the global scope so that an "unbound symbol" error can append a sorted
// nearest-prefix hint (SPEC_FULL.md "Unbound-symbol hinting"). This is a
// pure diagnostics aid: it never influences lookup() or setBinding() above.
type globalSymbolIndex struct {
	names *btree.BTreeG[string]
}

func newGlobalSymbolIndex() *globalSymbolIndex {
	return &globalSymbolIndex{names: btree.NewG(32, func(a, b string) bool { return a < b })}
}

func (g *globalSymbolIndex) add(name string) {
	g.names.ReplaceOrInsert(name)
}

// suggest looks only at the first globally-bound name at or after sym in
// sorted order, and returns it if it shares sym's first byte and differs
// from sym; otherwise it returns "", even when some other bound name shares
// that first byte. It is intentionally simple: a real fuzzy-match ranking
// is out of scope for a diagnostic hint.
func (g *globalSymbolIndex) suggest(sym string) string {
	if sym == "" {
		return ""
	}
	best := ""
	g.names.AscendGreaterOrEqual(sym, func(item string) bool {
		if len(item) > 0 && item[0] == sym[0] && item != sym {
			best = item
		}
		return false // one probe is enough for a hint
	})
	return best
}

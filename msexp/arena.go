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

// Arena is the sole owner of every Tree node for the lifetime of an
// Interpreter (spec §3, design note "Tree arena vs. ownership"). It grows
// monotonically in blocks so that the *Tree pointers it hands out stay
// stable even as the arena grows — nothing is ever relocated or freed
// individually, only released as a whole with the Interpreter.
type Arena struct {
	blocks    [][]Tree
	blockSize int
	nodes     uint64 // running allocation count, surfaced via Stats

	nilSingleton  *Tree
	unitSingleton *Tree
}

const defaultArenaBlockSize = 4096

// NewArena creates an arena and pre-allocates the two sentinel singletons
// (Nil and Unit) required by invariant "two sentinel singletons (Nil, Unit)
// are shared by pointer".
func NewArena() *Arena {
	return newArenaWithBlockSize(defaultArenaBlockSize)
}

func newArenaWithBlockSize(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = defaultArenaBlockSize
	}
	a := &Arena{blockSize: blockSize}
	a.nilSingleton = a.alloc()
	a.nilSingleton.Tag = TagNil
	a.unitSingleton = a.alloc()
	a.unitSingleton.Tag = TagUnit
	return a
}

func (a *Arena) alloc() *Tree {
	if len(a.blocks) == 0 || a.fullBlock() {
		a.blocks = append(a.blocks, make([]Tree, 0, a.blockSize))
	}
	last := &a.blocks[len(a.blocks)-1]
	*last = append(*last, Tree{})
	a.nodes++
	return &(*last)[len(*last)-1]
}

func (a *Arena) fullBlock() bool {
	last := a.blocks[len(a.blocks)-1]
	return len(last) == cap(last)
}

// Nil returns the shared Nil sentinel.
func (a *Arena) Nil() *Tree { return a.nilSingleton }

// Unit returns the shared Unit sentinel.
func (a *Arena) Unit() *Tree { return a.unitSingleton }

func (a *Arena) Cons(head, tail *Tree) *Tree {
	t := a.alloc()
	t.Tag = TagCons
	t.Head, t.Tail = head, tail
	return t
}

func (a *Arena) Symbol(name string) *Tree {
	t := a.alloc()
	t.Tag = TagSymbol
	t.Str = name
	return t
}

func (a *Arena) String(value string) *Tree {
	t := a.alloc()
	t.Tag = TagString
	t.Str = value
	return t
}

func (a *Arena) Nat64(value uint64) *Tree {
	t := a.alloc()
	t.Tag = TagNat64
	t.Nat = value
	return t
}

func (a *Arena) Bool(value bool) *Tree {
	t := a.alloc()
	t.Tag = TagBool
	t.Flag = value
	return t
}

func (a *Arena) Closure(env, formal, body *Tree) *Tree {
	t := a.alloc()
	t.Tag = TagClosure
	t.Env, t.Formal, t.Body = env, formal, body
	return t
}

func (a *Arena) Prim(id int) *Tree {
	t := a.alloc()
	t.Tag = TagPrim
	t.PrimID = id
	return t
}

// List builds a right-nested cons chain terminated in Nil from es, in order.
func (a *Arena) List(es ...*Tree) *Tree {
	res := a.Nil()
	for i := len(es) - 1; i >= 0; i-- {
		res = a.Cons(es[i], res)
	}
	return res
}

// Stats reports how many nodes the arena has allocated, used by the
// diagnostic trace (see trace.go) rendered through docker/go-units.
type Stats struct {
	Nodes  uint64
	Blocks int
}

func (a *Arena) Stats() Stats {
	return Stats{Nodes: a.nodes, Blocks: len(a.blocks)}
}

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

// List primitives (spec §4.7 "List module"), grounded on the teacher's own
// cons/car/cdr naming and style in list.go, rewritten against *Tree/arena
// instead of []Scmer slices.
func registerListPrimitives(in *Interpreter) {
	Declare(in, Declaration{Name: "nil", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return in.arena.Nil()
	}})
	Declare(in, Declaration{Name: "nil?", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return in.arena.Bool(expectCons(args, "nil?: argument").Head.Tag == TagNil)
	}})
	Declare(in, Declaration{Name: "cons?", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return in.arena.Bool(expectCons(args, "cons?: argument").Head.Tag == TagCons)
	}})
	Declare(in, Declaration{Name: "cons", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		car := expectCons(args, "cons: missing car").Head
		cdr := expectCons(args.Tail, "cons: missing cdr").Head
		return in.arena.Cons(car, cdr)
	}})
	Declare(in, Declaration{Name: "car", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return expectCons(expectCons(args, "car: argument").Head, "car: empty list").Head
	}})
	Declare(in, Declaration{Name: "cdr", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return expectCons(expectCons(args, "cdr: argument").Head, "cdr: empty list").Tail
	}})
	Declare(in, Declaration{Name: "list", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return args
	}})
	Declare(in, Declaration{Name: "id", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return expectCons(args, "id: argument").Head
	}})
	Declare(in, Declaration{Name: "length", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		var n uint64
		for it := expectCons(args, "length: argument").Head; it.Tag == TagCons; it = it.Tail {
			n++
		}
		return in.arena.Nat64(n)
	}})
	Declare(in, Declaration{Name: "append", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectCons(args, "append: missing first list").Head
		b := expectCons(args.Tail, "append: missing second list").Head
		return appendLists(in, a, b)
	}})
	Declare(in, Declaration{Name: "reverse", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		list := expectCons(args, "reverse: argument").Head
		out := in.arena.Nil()
		for it := list; it.Tag == TagCons; it = it.Tail {
			out = in.arena.Cons(it.Head, out)
		}
		return out
	}})
}

func appendLists(in *Interpreter, a, b *Tree) *Tree {
	if a.Tag != TagCons {
		return b
	}
	return in.arena.Cons(a.Head, appendLists(in, a.Tail, b))
}

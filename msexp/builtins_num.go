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

// Nat64 arithmetic and Bool logic primitives (spec §4.7 "Numeric/Boolean
// module"). Nat64 is unsigned and wraps on overflow like any fixed-width
// machine word; division and modulo by zero are *PartialEvalErrors rather
// than a Go panic, so they decorate the same way any other evaluation
// failure does.
func registerNumPrimitives(in *Interpreter) {
	binop := func(name string, f func(a, b uint64) uint64) {
		Declare(in, Declaration{Name: name, Fn: func(in *Interpreter, env, args *Tree) *Tree {
			a := expectNat64(expectCons(args, name+": first argument").Head, name+": first argument")
			b := expectNat64(expectCons(args.Tail, name+": second argument").Head, name+": second argument")
			return in.arena.Nat64(f(a.Nat, b.Nat))
		}})
	}
	cmp := func(name string, f func(a, b uint64) bool) {
		Declare(in, Declaration{Name: name, Fn: func(in *Interpreter, env, args *Tree) *Tree {
			a := expectNat64(expectCons(args, name+": first argument").Head, name+": first argument")
			b := expectNat64(expectCons(args.Tail, name+": second argument").Head, name+": second argument")
			return in.arena.Bool(f(a.Nat, b.Nat))
		}})
	}

	binop("add", func(a, b uint64) uint64 { return a + b })
	binop("sub", func(a, b uint64) uint64 { return a - b })
	binop("mul", func(a, b uint64) uint64 { return a * b })
	Declare(in, Declaration{Name: "div", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectNat64(expectCons(args, "div: first argument").Head, "div: first argument")
		b := expectNat64(expectCons(args.Tail, "div: second argument").Head, "div: second argument")
		if b.Nat == 0 {
			panic(&PartialEvalError{Message: "div: division by zero"})
		}
		return in.arena.Nat64(a.Nat / b.Nat)
	}})
	Declare(in, Declaration{Name: "mod", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectNat64(expectCons(args, "mod: first argument").Head, "mod: first argument")
		b := expectNat64(expectCons(args.Tail, "mod: second argument").Head, "mod: second argument")
		if b.Nat == 0 {
			panic(&PartialEvalError{Message: "mod: modulo by zero"})
		}
		return in.arena.Nat64(a.Nat % b.Nat)
	}})
	Declare(in, Declaration{Name: "minus", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectNat64(expectCons(args, "minus: argument").Head, "minus: argument")
		return in.arena.Nat64(-a.Nat)
	}})

	cmp("eq", func(a, b uint64) bool { return a == b })
	cmp("neq", func(a, b uint64) bool { return a != b })
	cmp("lt", func(a, b uint64) bool { return a < b })
	cmp("le", func(a, b uint64) bool { return a <= b })
	cmp("gt", func(a, b uint64) bool { return a > b })
	cmp("ge", func(a, b uint64) bool { return a >= b })

	boolUnary := func(name string, f func(a bool) bool) {
		Declare(in, Declaration{Name: name, Fn: func(in *Interpreter, env, args *Tree) *Tree {
			a := expectBool(expectCons(args, name+": argument").Head, name+": argument")
			return in.arena.Bool(f(a.Flag))
		}})
	}
	boolBinary := func(name string, f func(a, b bool) bool) {
		Declare(in, Declaration{Name: name, Fn: func(in *Interpreter, env, args *Tree) *Tree {
			a := expectBool(expectCons(args, name+": first argument").Head, name+": first argument")
			b := expectBool(expectCons(args.Tail, name+": second argument").Head, name+": second argument")
			return in.arena.Bool(f(a.Flag, b.Flag))
		}})
	}

	boolUnary("not", func(a bool) bool { return !a })
	boolBinary("and", func(a, b bool) bool { return a && b })
	boolBinary("or", func(a, b bool) bool { return a || b })
	boolBinary("implies", func(a, b bool) bool { return !a || b })
	boolBinary("iff", func(a, b bool) bool { return a == b })
}

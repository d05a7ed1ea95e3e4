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

// registerCoreForms installs registerCoreFormPrimitives' evalArgs=false
// forms (lambda/cond/quote/unquote/match/let/letrec/define/define_macro/
// set/begin, plus eval — see builtins_forms.go) together with the
// remaining spec §4.7 "core" entries that behave like ordinary procedures:
// the running environment, grammar introspection, global-environment
// access, and structural equality.
func registerCoreForms(in *Interpreter) {
	registerCoreFormPrimitives(in)

	Declare(in, Declaration{Name: "env", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return env
	}})
	Declare(in, Declaration{Name: "equal", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectCons(args, "equal: first argument").Head
		b := expectCons(args.Tail, "equal: second argument").Head
		return in.arena.Bool(a.Equal(b))
	}})
	Declare(in, Declaration{Name: "get_syntax", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return in.arena.List(in.syntaxPatterns, in.syntaxRules)
	}})
	Declare(in, Declaration{Name: "set_syntax", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		patterns := expectCons(args, "set_syntax: patterns").Head
		rules := expectCons(args.Tail, "set_syntax: rules").Head
		in.setSyntax(patterns, rules)
		return in.arena.Unit()
	}})
	Declare(in, Declaration{Name: "get_global_env", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		return in.globalEnv
	}})
	Declare(in, Declaration{Name: "set_global_env", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		in.globalEnv = expectCons(args, "set_global_env: argument").Head
		return in.arena.Unit()
	}})
}

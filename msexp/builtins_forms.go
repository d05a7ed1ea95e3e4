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

// registerCoreFormPrimitives installs the evaluator's "primitive forms"
// (spec §4.6/§4.7): lambda, cond, quote, unquote, match, let, letrec,
// define, define_macro, set, begin, plus eval, which — despite being
// evalArgs=true, a "primitive procedure" by the same flag that marks
// ordinary procedures — still requests a tail call back into Eval's loop.
// These are ordinary Declare-registered primitives like any other; nothing
// distinguishes them to Eval beyond the EvalArgs/FormFn fields on their own
// Declaration, which is what lets every one of them be lexically shadowed
// or passed around as a Prim value. Ported directly from
// original_source/src/eval/evaluator.cpp's addPrimitive block of the same
// name, one form per call.
func registerCoreFormPrimitives(in *Interpreter) {
	Declare(in, Declaration{Name: "lambda", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		formal := expectCons(args, "lambda: missing formal list").Head
		body := args.Tail
		return nil, nil, in.arena.Closure(env, formal, beginOf(in, body)), false
	}})

	Declare(in, Declaration{Name: "cond", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		test := expectCons(args, "cond: missing test").Head
		rest := args.Tail
		iftrue := expectCons(rest, "cond: missing true-branch").Head
		iffalse := rest.Tail
		if truthy(in.Eval(test, env)) {
			return iftrue, env, nil, true
		}
		if iffalse.Tag == TagCons {
			return iffalse.Head, env, nil, true
		}
		return nil, nil, in.arena.Unit(), false
	}})

	Declare(in, Declaration{Name: "quote", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		return nil, nil, in.quasiquote(expectCons(args, "quote: missing argument").Head, env), false
	}})

	Declare(in, Declaration{Name: "unquote", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		return nil, nil, in.Eval(expectCons(args, "unquote: missing argument").Head, env), false
	}})

	Declare(in, Declaration{Name: "match", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		valueExpr := expectCons(args, "match: missing value").Head
		clauses := args.Tail
		value := in.Eval(valueExpr, env)
		next, nextEnv, ok := in.evalMatch(clauses, env, value)
		if !ok {
			panic(&PartialEvalError{Message: "nonexhaustive patterns: " + clauses.String() + " ?= " + value.String(), At: clauses})
		}
		return next, nextEnv, nil, true
	}})

	Declare(in, Declaration{Name: "let", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		bindings := expectCons(args, "let: missing bindings").Head
		body := args.Tail
		newEnv := env
		for it := bindings; it.Tag == TagCons; it = it.Tail {
			pair := expectCons(it.Head, "let: malformed binding")
			sym := expectSymbol(pair.Head, "let: binding name")
			val := in.Eval(expectCons(pair.Tail, "let: missing binding value").Head, env)
			newEnv = in.extend(newEnv, sym.Str, val)
		}
		next, nextEnv := beginBodyTail(in, body, newEnv)
		return next, nextEnv, nil, true
	}})

	Declare(in, Declaration{Name: "letrec", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		bindings := expectCons(args, "letrec: missing bindings").Head
		body := args.Tail
		newEnv := env
		for it := bindings; it.Tag == TagCons; it = it.Tail {
			pair := expectCons(it.Head, "letrec: malformed binding")
			sym := expectSymbol(pair.Head, "letrec: binding name")
			newEnv = in.extend(newEnv, sym.Str, in.arena.Unit())
		}
		for it := bindings; it.Tag == TagCons; it = it.Tail {
			pair := expectCons(it.Head, "letrec: malformed binding")
			sym := expectSymbol(pair.Head, "letrec: binding name")
			val := in.Eval(expectCons(pair.Tail, "letrec: missing binding value").Head, newEnv)
			setBinding(newEnv, sym.Str, val)
		}
		next, nextEnv := beginBodyTail(in, body, newEnv)
		return next, nextEnv, nil, true
	}})

	Declare(in, Declaration{Name: "define", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		sym := expectSymbol(expectCons(args, "define: missing name").Head, "define: name")
		valExpr := expectCons(args.Tail, "define: missing value").Head
		val := in.Eval(valExpr, env)
		in.globalEnv = in.extend(in.globalEnv, sym.Str, val)
		in.globals.add(sym.Str)
		return nil, nil, in.arena.Unit(), false
	}})

	Declare(in, Declaration{Name: "define_macro", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		name := expectSymbol(expectCons(args, "define_macro: missing name").Head, "define_macro: name")
		formal := expectCons(args.Tail, "define_macro: missing formal list").Head
		body := args.Tail.Tail
		in.macros[name.Str] = in.arena.Closure(env, formal, beginOf(in, body))
		return nil, nil, in.arena.Unit(), false
	}})

	Declare(in, Declaration{Name: "set", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		sym := expectSymbol(expectCons(args, "set: missing name").Head, "set: name")
		valExpr := expectCons(args.Tail, "set: missing value").Head
		val := in.Eval(valExpr, env)
		if !setBinding(env, sym.Str, val) {
			panic(&PartialEvalError{Message: "set: unbound symbol: " + sym.Str, At: sym})
		}
		return nil, nil, in.arena.Unit(), false
	}})

	Declare(in, Declaration{Name: "begin", FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		if args.Tag != TagCons {
			return nil, nil, in.arena.Unit(), false
		}
		next, nextEnv := beginBodyTail(in, args, env)
		return next, nextEnv, nil, true
	}})

	// eval is evalArgs=true — its arguments arrive already evaluated by
	// applyValue, just like any ordinary procedure's — but it still needs
	// FormFn's tail-call signaling, since evaluating its (already-evaluated)
	// first argument a second time as code is the entire point of eval.
	Declare(in, Declaration{Name: "eval", EvalArgs: true, FormFn: func(in *Interpreter, env, args *Tree) (*Tree, *Tree, *Tree, bool) {
		h := expectCons(args, "eval: missing expression").Head
		evalEnv := env
		if args.Tail.Tag == TagCons {
			evalEnv = args.Tail.Head
		}
		return h, evalEnv, nil, true
	}})
}

// evalMatch walks a match form's clause list, trying each pattern against
// value in turn, and returns the matched clause's body as a tail-call
// request once a clause succeeds.
func (in *Interpreter) evalMatch(clauses, env, value *Tree) (*Tree, *Tree, bool) {
	for it := clauses; it.Tag == TagCons; it = it.Tail {
		clause := expectCons(it.Head, "match: malformed clause")
		pattern := clause.Head
		matchedEnv, ok := in.Match(env, pattern, value)
		if !ok {
			continue
		}
		next, nextEnv := beginBodyTail(in, clause.Tail, matchedEnv)
		return next, nextEnv, true
	}
	return nil, nil, false
}

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

// Evaluator (spec §4.6). Every Cons is evaluated the same way: head is
// evaluated first to ehead, then dispatch happens purely on ehead's tag —
// Prim or Closure. lambda/cond/let/letrec/define/set/begin/match/
// define_macro are ordinary primitives living in the registry (see
// builtins_forms.go) with EvalArgs=false, so their operands reach them
// unevaluated; eval lives there too, with EvalArgs=true. Nothing about
// their names is special to Eval itself, which
// is what lets any of them be shadowed by a local binding or passed around
// as a first-class Prim value, same as the teacher's own uniform
// addPrimitive table in original_source/src/eval/evaluator.cpp.
//
// The teacher drives this with `goto restart`; Go has no goto-as-loop, so
// the equivalent idiom here is a plain `for` loop that reassigns tree/env
// and `continue`s instead of recursing back into Eval, which is what
// keeps tail calls (closure self-calls, cond/let/letrec/begin tails, eval
// in tail position) from growing the Go call stack (spec §8's ~1e5-deep
// tail-call testable property).
func (in *Interpreter) Eval(tree, env *Tree) *Tree {
	for {
		switch tree.Tag {
		case TagSymbol:
			v := in.lookup(env, tree.Str)
			if v == nil {
				hint := in.globals.suggest(tree.Str)
				msg := "unbound symbol: " + tree.Str
				if hint != "" {
					msg += " (did you mean " + hint + "?)"
				}
				panic(&PartialEvalError{Message: msg, At: tree})
			}
			return v
		case TagCons:
			next, nextEnv, result, isTail := in.evalCons(tree, env)
			if isTail {
				tree, env = next, nextEnv
				continue
			}
			return result
		default:
			return tree
		}
	}
}

// evalCons evaluates one function-application node. It is its own method,
// rather than inlined into Eval's loop, so that decorateOnPanic's defer is
// scoped to a single application — matching original_source's per-node
// try/catch inside its own eval() while(true) loop — instead of wrapping
// Eval's whole loop body, where a single defer would never discharge until
// the entire call chain returned.
func (in *Interpreter) evalCons(tree, env *Tree) (tailTree, tailEnv, result *Tree, isTail bool) {
	defer decorateOnPanic(tree)
	ehead := in.Eval(tree.Head, env)
	return in.applyValue(ehead, tree.Tail, env)
}

// applyValue dispatches a procedure call once the callee is a value but the
// raw argument list args has not yet been touched — whether and how args
// get evaluated depends on ehead itself (a Prim's EvalArgs flag; a Closure
// always evaluates its arguments). Closures, and FormFn primitives that
// request a tail call, report (bodyTree, newEnv, nil, true) so Eval's loop
// can continue in tail position instead of recursing; an Fn primitive, or a
// FormFn that returns a value outright, reports (nil, nil, value, false).
// callerEnv is the environment the call site itself runs in — primitives
// that need it (e.g. env) receive it, since a TagPrim tree carries no
// environment of its own.
func (in *Interpreter) applyValue(ehead, args, callerEnv *Tree) (tailTree, tailEnv, result *Tree, isTail bool) {
	switch ehead.Tag {
	case TagClosure:
		argVals := in.evalList(args, callerEnv)
		newEnv := bindClosureParams(in, ehead, argVals)
		return ehead.Body, newEnv, nil, true
	case TagPrim:
		decl := in.prims.byID(ehead.PrimID)
		callArgs := args
		if decl.EvalArgs {
			callArgs = in.evalList(args, callerEnv)
		}
		if decl.FormFn != nil {
			return decl.FormFn(in, callerEnv, callArgs)
		}
		return nil, nil, decl.Fn(in, callerEnv, callArgs), false
	default:
		panic(&PartialEvalError{Message: "head element " + ehead.String() + " is not a function", At: ehead})
	}
}

// applyClosureRaw applies closure to args without evaluating them — used by
// the macro expander (spec §4.5), whose macro arguments are trees, not
// values.
func (in *Interpreter) applyClosureRaw(closure, args *Tree) *Tree {
	newEnv := bindClosureParams(in, closure, args)
	return in.Eval(closure.Body, newEnv)
}

// bindClosureParams matches argVals against closure's formal pattern via
// the general tree matcher (spec §4.6's "match the evaluated argument list
// against formal"), starting from the closure's captured environment. A
// mismatch raises a complete *EvalError directly, bypassing decorate,
// exactly as original_source/src/eval/evaluator.cpp does at both its
// Closure-application and macro-expansion call sites.
func bindClosureParams(in *Interpreter, closure, argVals *Tree) *Tree {
	newEnv, ok := in.Match(closure.Env, closure.Formal, argVals)
	if !ok {
		panic(&EvalError{
			Message:     "pattern matching failed: " + closure.Formal.String() + " ?= " + argVals.String(),
			Offending:   argVals,
			Surrounding: closure.Formal,
		})
	}
	return newEnv
}

// evalList evaluates each element of a raw argument list left to right.
func (in *Interpreter) evalList(list, env *Tree) *Tree {
	if list.Tag != TagCons {
		return in.arena.Nil()
	}
	head := in.Eval(list.Head, env)
	return in.arena.Cons(head, in.evalList(list.Tail, env))
}

// beginOf wraps a body (a list of expressions) into a single `begin`
// form, used by lambda/define_macro so a multi-expression body has one
// tree to store as Closure.Body.
func beginOf(in *Interpreter, body *Tree) *Tree {
	if body.Tag == TagCons && body.Tail.Tag == TagNil {
		return body.Head
	}
	return in.arena.Cons(in.arena.Symbol("begin"), body)
}

// beginBodyTail evaluates every expression in body except the last for
// side effects, returning the last expression plus the environment it
// should run in, for the caller to continue Eval's loop in tail position.
func beginBodyTail(in *Interpreter, body, env *Tree) (*Tree, *Tree) {
	if body.Tag != TagCons {
		return in.arena.Unit(), env
	}
	for body.Tail.Tag == TagCons {
		in.Eval(body.Head, env)
		body = body.Tail
	}
	return body.Head, env
}

// truthy treats TagBool false as the only falsy value — Nil, 0 and the
// empty string are all truthy, same as the teacher's Scheme-flavored
// truthiness rather than a C-like "zero is false".
func truthy(v *Tree) bool {
	return v.Tag != TagBool || v.Flag
}

// quasiquote (spec §4.6) is `quote`'s actual traversal: every Cons headed by
// the symbol unquote is replaced by its evaluated argument, everything else
// is walked structurally, and a subtree with no unquote anywhere inside it
// comes back as the exact same *Tree pointer it started as.
func (in *Interpreter) quasiquote(tree, env *Tree) *Tree {
	if tree.Tag != TagCons {
		return tree
	}
	if tree.Head.Tag == TagSymbol && tree.Head.Str == "unquote" {
		return in.Eval(expectCons(tree.Tail, "unquote: missing argument").Head, env)
	}
	head := in.quasiquote(tree.Head, env)
	tail := in.quasiquote(tree.Tail, env)
	if head == tree.Head && tail == tree.Tail {
		return tree
	}
	return in.arena.Cons(head, tail)
}

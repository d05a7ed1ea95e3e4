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

// Macro expander (spec §4.5). Runs in two passes over a resolved parse
// tree:
//
//  1. materialize turns the raw (rule-name . children) nodes the resolver
//     produced into literal Tree values, by interpreting the ten
//     bootstrap reader names fixed at construction time
//     (original_source/src/eval/evaluator.cpp's default setSyntax call):
//     symbol', nat64', string', nil', cons', period', quote', unquote',
//     tree', id'. A node headed by any other rule/pattern name (one a
//     grammar extension installed via set_syntax added) keeps its head
//     symbol and has only its children materialized, to be picked up by
//     pass 2 as an ordinary macro call.
//  2. expandMacros walks the materialized tree inside-out — expanding a
//     call's arguments before consulting whether its head names a macro —
//     and, where the head does name one (either a grammar extension's
//     handler or something installed by define_macro), substitutes the
//     macro's expansion and re-expands that in turn, recovering any
//     *PartialEvalError raised mid-expansion into a complete *EvalError
//     via decorate (spec §6, §7 kind 3).
func (in *Interpreter) expand(tree, env *Tree) *Tree {
	return in.expandMacros(in.materialize(tree), env)
}

func (in *Interpreter) materialize(tree *Tree) *Tree {
	if tree.Tag != TagCons {
		return tree
	}
	head := tree.Head
	if head.Tag != TagSymbol {
		return tree
	}
	args := tree.Tail

	switch head.Str {
	case "symbol'":
		lexeme := expectString(nthOf(args, 0), "symbol': lexeme").Str
		return in.arena.Symbol(lexeme)
	case "nat64'":
		lexeme := expectString(nthOf(args, 0), "nat64': lexeme").Str
		return in.arena.Nat64(parseNat64Lexeme(lexeme))
	case "string'":
		lexeme := expectString(nthOf(args, 0), "string': lexeme").Str
		unquoted := stripQuotes(lexeme)
		unescaped, err := UnescapeString(unquoted)
		if err != nil {
			panic(err)
		}
		return in.arena.String(unescaped)
	case "nil'":
		return in.arena.Nil()
	case "cons'":
		h := in.materialize(nthOf(args, 0))
		t := in.materialize(nthOf(args, 1))
		return in.arena.Cons(h, t)
	case "period'":
		return in.materialize(nthOf(args, 1))
	case "quote'":
		inner := in.materialize(nthOf(args, 1))
		return in.arena.List(in.arena.Symbol("quote"), inner)
	case "unquote'":
		inner := in.materialize(nthOf(args, 1))
		return in.arena.List(in.arena.Symbol("unquote"), inner)
	case "tree'":
		return in.materialize(nthOf(args, 1))
	case "id'":
		return in.materialize(nthOf(args, 0))
	default:
		return in.arena.Cons(head, in.materializeList(args))
	}
}

func (in *Interpreter) materializeList(list *Tree) *Tree {
	if list.Tag != TagCons {
		return list
	}
	return in.arena.Cons(in.materialize(list.Head), in.materializeList(list.Tail))
}

// stripQuotes removes one leading and one trailing byte if they look like
// a quote pair, for the string' lexeme (which the lexer captured complete
// with its surrounding quotes).
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func (in *Interpreter) expandMacros(tree, env *Tree) *Tree {
	if tree.Tag != TagCons {
		return tree
	}
	head := tree.Head

	expandedHead := in.expandMacros(head, env)
	expandedArgs := in.expandMacroList(tree.Tail, env)

	if expandedHead.Tag == TagSymbol {
		if macro, ok := in.macros[expandedHead.Str]; ok {
			defer decorateOnPanic(expandedArgs)
			expanded := in.applyClosureRaw(macro, expandedArgs)
			return in.expandMacros(expanded, env)
		}
	}

	return in.arena.Cons(expandedHead, expandedArgs)
}

func (in *Interpreter) expandMacroList(list, env *Tree) *Tree {
	if list.Tag != TagCons {
		return list
	}
	return in.arena.Cons(in.expandMacros(list.Head, env), in.expandMacroList(list.Tail, env))
}

// decorateOnPanic recovers a *PartialEvalError and turns it into a complete
// *EvalError carrying surrounding: the macro's argument list when deferred
// by expandMacros, the application node when deferred by eval.go's
// evalCons. Matches the catch blocks of Evaluator::expand/eval in
// original_source/src/eval/evaluator.cpp.
func decorateOnPanic(surrounding *Tree) {
	if r := recover(); r != nil {
		decorate(r, surrounding)
	}
}

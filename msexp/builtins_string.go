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

import "strconv"

// String primitives (spec §4.7 "String module"). string_symbol/string_nat64
// convert a String tree into a Symbol/Nat64 tree and back; string_escape/
// string_unescape expose the byte-escape codec printer.go implements for
// the reader/writer; the rest are the ordinary string utilities every one
// of the teacher's builtin files carries a version of.
func registerStringPrimitives(in *Interpreter) {
	Declare(in, Declaration{Name: "string_symbol", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_symbol: argument").Head, "string_symbol: argument")
		return in.arena.Symbol(s.Str)
	}})
	Declare(in, Declaration{Name: "symbol_string", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectSymbol(expectCons(args, "symbol_string: argument").Head, "symbol_string: argument")
		return in.arena.String(s.Str)
	}})
	Declare(in, Declaration{Name: "string_nat64", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_nat64: argument").Head, "string_nat64: argument")
		return in.arena.Nat64(parseNat64Lexeme(s.Str))
	}})
	Declare(in, Declaration{Name: "nat64_string", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		n := expectNat64(expectCons(args, "nat64_string: argument").Head, "nat64_string: argument")
		return in.arena.String(strconv.FormatUint(n.Nat, 10))
	}})
	Declare(in, Declaration{Name: "string_escape", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_escape: argument").Head, "string_escape: argument")
		return in.arena.String(EscapeString(s.Str))
	}})
	Declare(in, Declaration{Name: "string_unescape", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_unescape: argument").Head, "string_unescape: argument")
		out, err := UnescapeString(s.Str)
		if err != nil {
			panic(err)
		}
		return in.arena.String(out)
	}})
	Declare(in, Declaration{Name: "string_length", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_length: argument").Head, "string_length: argument")
		return in.arena.Nat64(uint64(len(s.Str)))
	}})
	Declare(in, Declaration{Name: "string_char", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_char: string").Head, "string_char: string")
		i := expectNat64(expectCons(args.Tail, "string_char: index").Head, "string_char: index")
		if i.Nat >= uint64(len(s.Str)) {
			panic(&PartialEvalError{Message: "string_char: index out of range"})
		}
		return in.arena.Nat64(uint64(s.Str[i.Nat]))
	}})
	Declare(in, Declaration{Name: "char_string", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		c := expectNat64(expectCons(args, "char_string: argument").Head, "char_string: argument")
		return in.arena.String(string([]byte{byte(c.Nat)}))
	}})
	Declare(in, Declaration{Name: "string_concat", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		var out []byte
		for it := args; it.Tag == TagCons; it = it.Tail {
			s := expectString(it.Head, "string_concat: argument")
			out = append(out, s.Str...)
		}
		return in.arena.String(string(out))
	}})
	Declare(in, Declaration{Name: "string_substr", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		s := expectString(expectCons(args, "string_substr: string").Head, "string_substr: string")
		start := expectNat64(expectCons(args.Tail, "string_substr: start").Head, "string_substr: start")
		length := expectNat64(expectCons(args.Tail.Tail, "string_substr: length").Head, "string_substr: length")
		if start.Nat > uint64(len(s.Str)) || start.Nat+length.Nat > uint64(len(s.Str)) {
			panic(&PartialEvalError{Message: "string_substr: range out of bounds"})
		}
		return in.arena.String(s.Str[start.Nat : start.Nat+length.Nat])
	}})
	Declare(in, Declaration{Name: "string_eq", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		a := expectString(expectCons(args, "string_eq: first argument").Head, "string_eq: first argument")
		b := expectString(expectCons(args.Tail, "string_eq: second argument").Head, "string_eq: second argument")
		return in.arena.Bool(a.Str == b.Str)
	}})
}

// parseNat64Lexeme parses a numeric literal lexeme, supporting plain
// decimal and 0x-prefixed hex. SPEC_FULL.md Open Question (b): a leading
// zero on a non-empty decimal literal that isn't itself exactly "0" is
// rejected explicitly rather than silently accepted with octal-looking
// meaning or silently stripped.
func parseNat64Lexeme(lexeme string) uint64 {
	if len(lexeme) >= 2 && (lexeme[:2] == "0x" || lexeme[:2] == "0X") {
		v, err := strconv.ParseUint(lexeme[2:], 16, 64)
		if err != nil {
			panic(&PartialEvalError{Message: "nat64: malformed hex literal: " + lexeme})
		}
		return v
	}
	if len(lexeme) > 1 && lexeme[0] == '0' {
		panic(&PartialEvalError{Message: "nat64: leading zero in decimal literal: " + lexeme})
	}
	v, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		panic(&PartialEvalError{Message: "nat64: malformed decimal literal: " + lexeme})
	}
	return v
}

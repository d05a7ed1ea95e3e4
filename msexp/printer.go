/*
Copyright (C) 2023-2026  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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

import (
	"strconv"
	"strings"
)

// String renders t the way the bootstrap reader would have to read it back
// (spec §4.7's string_symbol/string_nat64/string_escape family exists
// precisely so programs can build this kind of text themselves).
func (t *Tree) String() string {
	var b strings.Builder
	writeTree(&b, t)
	return b.String()
}

func writeTree(b *strings.Builder, t *Tree) {
	switch t.Tag {
	case TagNil:
		b.WriteString("()")
	case TagUnit:
		b.WriteString("#unit")
	case TagSymbol:
		b.WriteString(t.Str)
	case TagString:
		b.WriteByte('"')
		b.WriteString(EscapeString(t.Str))
		b.WriteByte('"')
	case TagNat64:
		b.WriteString(strconv.FormatUint(t.Nat, 10))
	case TagBool:
		if t.Flag {
			b.WriteString("#true")
		} else {
			b.WriteString("#false")
		}
	case TagClosure:
		b.WriteString("#closure")
	case TagPrim:
		b.WriteString("#prim")
	case TagCons:
		b.WriteByte('(')
		writeTree(b, t.Head)
		rest := t.Tail
		for rest.Tag == TagCons {
			b.WriteByte(' ')
			writeTree(b, rest.Head)
			rest = rest.Tail
		}
		if rest.Tag != TagNil {
			b.WriteString(" . ")
			writeTree(b, rest)
		}
		b.WriteByte(')')
	default:
		b.WriteString("#?")
	}
}

// escapeTable and its inverse implement the byte-escape set named in spec
// §4.7: \ " a b f n r t v.
var escapeTable = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'\a': 'a',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'\v': 'v',
}

var unescapeTable = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// EscapeString backs the string_escape primitive (spec §4.7): every byte in
// the escape set is rewritten as a backslash pair, everything else passes
// through unchanged.
func EscapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := escapeTable[c]; ok {
			b.WriteByte('\\')
			b.WriteByte(esc)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// UnescapeString backs the string_unescape primitive (spec §4.7). An
// unterminated trailing backslash, or a backslash followed by a byte
// outside the escape set, is a *PartialEvalError — there is no silent
// pass-through for malformed escapes, matching the family's habit of
// panicking explicitly on malformed input rather than guessing.
func UnescapeString(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", &PartialEvalError{Message: "unescape: trailing backslash"}
		}
		u, ok := unescapeTable[s[i]]
		if !ok {
			return "", &PartialEvalError{Message: "unescape: unknown escape sequence"}
		}
		b.WriteByte(u)
	}
	return b.String(), nil
}

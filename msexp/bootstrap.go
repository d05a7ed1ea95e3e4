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

// Default bootstrap grammar (spec §4.8), reproducing the eleven
// pattern/seven rule set original_source/src/eval/evaluator.cpp installs
// in its constructor's default setSyntax call: a blank pattern, a line
// comment pattern, a block comment pattern, symbol'/nat64'/string', five
// single-character punctuation patterns (lparen'/rparen'/dotchar'/
// commachar' and the quotechar' quote prefix), and the seven rules
// (id'/tree'/quote'/unquote'/nil'/cons'/period'). Built directly as two
// Trees (rather than parsed from text) and fed through setSyntax so that
// get_syntax's round trip and a user's own set_syntax call go through
// exactly the same path. The "_" lhs/category sentinel follows the
// original's inline convention: a "_" pattern category is the lexer's
// ignored-token class, a "_" rule lhs is the parser's start symbol.
func installBootstrapGrammar(in *Interpreter) {
	a := in.arena

	rangeP := func(lo, hi byte) *Tree { return a.List(a.Symbol("range"), a.Nat64(uint64(lo)), a.Nat64(uint64(hi))) }
	charP := func(s string) *Tree { return a.List(a.Symbol("char"), a.String(s)) }
	exceptP := func(s string) *Tree { return a.List(a.Symbol("except"), a.String(s)) }
	wordP := func(s string) *Tree { return a.List(a.Symbol("word"), a.String(s)) }
	starP := func(p *Tree) *Tree { return a.List(a.Symbol("star"), p) }
	plusP := func(p *Tree) *Tree { return a.List(a.Symbol("plus"), p) }
	altP := func(ps ...*Tree) *Tree { return a.List(append([]*Tree{a.Symbol("alt")}, ps...)...) }
	concatP := func(ps ...*Tree) *Tree { return a.List(append([]*Tree{a.Symbol("concat")}, ps...)...) }
	utf8P := a.List(a.Symbol("utf8segment"))

	wsChars := charP(" \t\r\n")
	nfaWS := plusP(wsChars)
	nfaCommentLine := concatP(wordP("//"), starP(exceptP("\n\r")))
	nfaCommentBlock := concatP(
		wordP("/*"),
		starP(concatP(starP(exceptP("*")), plusP(charP("*")), exceptP("/"))),
		starP(exceptP("*")),
		plusP(charP("*")),
		charP("/"),
	)

	// symbol' uses the same restrictive allow-list the original does
	// (identifier-start chars, then identifier-continuation chars), rather
	// than "every byte that isn't punctuation" — that looser shape is what
	// let a bare "." lex as a symbol and made the dedicated period pattern
	// unreachable.
	identStart := altP(rangeP('a', 'z'), rangeP('A', 'Z'), charP("_'"), utf8P)
	identCont := altP(rangeP('a', 'z'), rangeP('A', 'Z'), rangeP('0', '9'), charP("_'"), utf8P)
	nfaSymbol := concatP(identStart, starP(identCont))

	digit := rangeP('0', '9')
	hexdigit := altP(digit, rangeP('a', 'f'), rangeP('A', 'F'))
	nfaNat64 := altP(plusP(digit), concatP(wordP("0x"), plusP(hexdigit)))
	anyP := a.List(a.Symbol("any"))
	nfaString := concatP(
		charP("\""),
		starP(altP(exceptP("\"\\"), concatP(charP("\\"), anyP))),
		charP("\""),
	)
	charPattern := func(c string) *Tree { return charP(c) }

	lhs := func(name string, prec uint64) *Tree { return a.List(a.Symbol(name), a.Nat64(prec)) }

	pat := func(name string, category string, prec uint64, nfa *Tree) *Tree {
		return a.List(a.Symbol(name), lhs(category, prec), nfa)
	}
	rhsSym := func(name string, prec uint64) *Tree { return a.List(a.Symbol(name), a.Nat64(prec)) }
	rule := func(name, ruleLHS string, prec uint64, rhs ...*Tree) *Tree {
		return a.List(a.Symbol(name), lhs(ruleLHS, prec), a.List(rhs...))
	}

	// The quote-prefix token is a backtick, not an apostrophe — symbol'
	// above allows a trailing apostrophe (needed so rule/macro names like
	// quote' can be written as ordinary symbols), so an apostrophe prefix
	// token would be swallowed whole by symbol' on every use and never
	// fire, the same unreachable-pattern bug the period fix above
	// addresses. original_source uses "`" for exactly this reason.
	patterns := a.List(
		pat("ws'", "_", 0, nfaWS),
		pat("comment_line'", "_", 0, nfaCommentLine),
		pat("comment_block'", "_", 0, nfaCommentBlock),
		pat("nat64'", "tree", 0, nfaNat64),
		pat("string'", "tree", 0, nfaString),
		pat("symbol'", "tree", 1, nfaSymbol),
		pat("lparen'", "lparen", 0, charPattern("(")),
		pat("rparen'", "rparen", 0, charPattern(")")),
		pat("quotechar'", "quotechar", 0, charPattern("`")),
		pat("commachar'", "commachar", 0, charPattern(",")),
		pat("dotchar'", "dotchar", 0, charPattern(".")),
	)

	rules := a.List(
		rule("id'", "_", 0, rhsSym("tree", 0)),
		rule("tree'", "tree", 0, rhsSym("lparen", 0), rhsSym("treelist", 0), rhsSym("rparen", 0)),
		rule("quote'", "tree", 0, rhsSym("quotechar", 0), rhsSym("tree", 0)),
		rule("unquote'", "tree", 0, rhsSym("commachar", 0), rhsSym("tree", 0)),
		rule("nil'", "treelist", 0),
		rule("cons'", "treelist", 0, rhsSym("tree", 0), rhsSym("treelist", 0)),
		rule("period'", "treelist", 0, rhsSym("dotchar", 0), rhsSym("tree", 0)),
	)

	in.setSyntax(patterns, rules)
}

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

// setSyntax (spec §4.1) replaces the interpreter's entire grammar in one
// shot from two separate trees — patterns and rules — clearing the lexer's
// patterns, the parser's patterns and rules, and the symbol table, then
// rebuilding all three one entry at a time. Every subsequently parsed
// statement (SPEC_FULL.md Open Question (a)) uses the new grammar — the
// statement mid-flight when set_syntax itself runs keeps using whatever
// grammar was in effect when it was parsed.
//
// Entry shape, identical for both trees:
//   pattern entry: (name (category precedence) nfa-spec)
//   rule entry:    (name (lhs precedence) rhs-list)
// where rhs-list is a list of (symbol precedence) pairs and nfa-spec is
// compiled by treePattern (below). The category/lhs symbol "_" is the
// sentinel original_source/src/eval/evaluator.cpp's setSyntax checks
// inline (`sname == "_"`): in a pattern entry it selects the lexer's
// ignored-token category, in a rule entry it selects the parser's start
// symbol — there is no separate (ignore ...)/(start ...) directive.
func (in *Interpreter) setSyntax(patterns, rules *Tree) {
	in.syntaxPatterns = patterns
	in.syntaxRules = rules
	in.lexer.ClearPatterns()
	in.parser.ClearPatterns()
	in.parser.ClearRules()
	in.symbols.reset()
	in.parser.SetIgnoredSymbol(IgnoredSymbol)
	in.parser.SetStartSymbol(StartSymbol)
	in.ruleNames = make(map[int]string)

	nextPatternID := 0
	for it := patterns; it.Tag == TagCons; it = it.Tail {
		name, catSymTree, prec, nfaSpec := splitSyntaxEntry(it.Head, "setSyntax: pattern entry")
		catSym := in.symbolOrIgnored(catSymTree)
		id := in.lexer.AddPattern(nextPatternID, in.treePattern(nfaSpec))
		pid := in.parser.AddPattern(catSym, prec)
		if id != pid {
			panic(&PartialEvalError{Message: "setSyntax: lexer/parser pattern id mismatch"})
		}
		in.ruleNames[negPatternRuleKey(id)] = name.Str
		nextPatternID++
	}

	for it := rules; it.Tag == TagCons; it = it.Tail {
		name, lhsSymTree, prec, rhsList := splitSyntaxEntry(it.Head, "setSyntax: rule entry")
		lhsSym := in.symbolOrStart(lhsSymTree)
		var rhs []RHSSymbol
		for r := rhsList; r.Tag == TagCons; r = r.Tail {
			pair := expectCons(r.Head, "setSyntax: rhs element")
			sym := expectSymbol(pair.Head, "setSyntax: rhs symbol")
			precPair := expectCons(pair.Tail, "setSyntax: rhs precedence")
			pprec := expectNat64(precPair.Head, "setSyntax: rhs precedence")
			rhs = append(rhs, RHSSymbol{Sym: in.symbols.intern(sym.Str), Prec: pprec.Nat})
		}
		id := in.parser.AddRule(lhsSym, prec, rhs)
		in.ruleNames[id] = name.Str
	}
}

// splitSyntaxEntry decomposes a (name (lhs precedence) body) entry shared by
// both pattern and rule trees.
func splitSyntaxEntry(entry *Tree, what string) (name, lhs *Tree, prec uint64, body *Tree) {
	e := expectCons(entry, what)
	name = expectSymbol(e.Head, what+": name")
	lhsPair := expectCons(expectCons(e.Tail, what+": lhs/precedence").Head, what+": lhs/precedence")
	lhs = expectSymbol(lhsPair.Head, what+": lhs symbol")
	precPair := expectCons(lhsPair.Tail, what+": precedence")
	prec = expectNat64(precPair.Head, what+": precedence").Nat
	body = expectCons(e.Tail.Tail, what+": body").Head
	return name, lhs, prec, body
}

// negPatternRuleKey keeps pattern-id-derived macro names out of the rule-id
// keyed ruleNames map (pattern ids and rule ids are independent sequences)
// by storing them at negative keys; lookupPatternName below undoes this.
func negPatternRuleKey(patternID int) int { return -patternID - 1 }

func (in *Interpreter) lookupPatternName(patternID int) (string, bool) {
	name, ok := in.ruleNames[negPatternRuleKey(patternID)]
	return name, ok
}

// symbolOrIgnored interns sym, except the sentinel name "_" which denotes
// the lexer's ignored-token category in a pattern entry.
func (in *Interpreter) symbolOrIgnored(sym *Tree) GrammarSymbol {
	if sym.Str == "_" {
		return IgnoredSymbol
	}
	return in.symbols.intern(sym.Str)
}

// symbolOrStart interns sym, except the sentinel name "_" which denotes the
// parser's start symbol in a rule entry.
func (in *Interpreter) symbolOrStart(sym *Tree) GrammarSymbol {
	if sym.Str == "_" {
		return StartSymbol
	}
	return in.symbols.intern(sym.Str)
}

func nthOf(list *Tree, n int) *Tree {
	it := list
	for i := 0; i < n; i++ {
		it = expectCons(it, "treePattern: argument list too short").Tail
	}
	return expectCons(it, "treePattern: argument list too short").Head
}

// treePattern compiles an NFA description tree into a lexer NFA (spec
// §4.2). The description uses the same tag vocabulary as the lexer's Go
// constructors: (char "abc"), (except "abc"), (range lo hi), (word "foo"),
// (concat p1 p2 ...), (alt p1 p2 ...), (opt p), (star p), (plus p), (any),
// (utf8segment), (empty).
func (in *Interpreter) treePattern(spec *Tree) NFA {
	l := in.lexer
	if spec.Tag != TagCons {
		panic(&PartialEvalError{Message: "treePattern: expected a pattern form", At: spec})
	}
	tag := expectSymbol(spec.Head, "treePattern: form head")
	args := spec.Tail
	switch tag.Str {
	case "empty":
		return l.Empty()
	case "any":
		return l.Any()
	case "utf8segment":
		return l.UTF8Segment()
	case "char":
		return l.Char([]byte(expectString(nthOf(args, 0), "treePattern: char bytes").Str))
	case "except":
		return l.Except([]byte(expectString(nthOf(args, 0), "treePattern: except bytes").Str))
	case "range":
		lo := expectNat64(nthOf(args, 0), "treePattern: range lo").Nat
		hi := expectNat64(nthOf(args, 1), "treePattern: range hi").Nat
		return l.Range(byte(lo), byte(hi))
	case "word":
		return l.Word([]byte(expectString(nthOf(args, 0), "treePattern: word bytes").Str))
	case "concat":
		return l.Concat(in.treePatternList(args))
	case "alt":
		return l.Alt(in.treePatternList(args))
	case "opt":
		return l.Opt(in.treePattern(nthOf(args, 0)))
	case "star":
		return l.Star(in.treePattern(nthOf(args, 0)))
	case "plus":
		return l.Plus(in.treePattern(nthOf(args, 0)))
	default:
		panic(&PartialEvalError{Message: "treePattern: unknown form " + tag.Str, At: spec})
	}
}

func (in *Interpreter) treePatternList(args *Tree) []NFA {
	var out []NFA
	for it := args; it.Tag == TagCons; it = it.Tail {
		out = append(out, in.treePattern(it.Head))
	}
	return out
}

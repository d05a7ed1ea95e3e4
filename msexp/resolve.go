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

// Forest resolver (spec §4.3). Walks the shared-packed parse forest built
// by the most recent Parser.NextSentence() call and reconstructs concrete
// trees: one cons cell per matched rule, tagged with the rule's macro
// name, whose tail is the list of whatever its RHS symbols resolved to.
// Multiple back-links on the same forest cell fan out into multiple
// candidate trees (cross product), exactly the mechanism that produces a
// grammar-ambiguity report instead of silently picking one parse.
//
// Grounded on original_source/src/eval/evaluator.cpp's
// Evaluator::resolve(Location, right, maxDepth) / resolve(maxDepth) pair.
func (in *Interpreter) resolve(maxDepth int) *Tree {
	parser := in.parser
	forest := parser.GetForest()
	pos := len(parser.GetSentence())

	if pos >= len(forest) {
		panic(&ResolveError{Message: "no statement recognized"})
	}

	var starts []int
	for i, cell := range forest[pos] {
		rule := parser.GetRule(cell.State.Rule)
		if cell.State.StartPos == 0 && rule.LHS == startSymbolOf(parser) && cell.State.Progress == len(rule.RHS) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		panic(&ResolveError{Message: "parse failed: no complete derivation"})
	}

	var candidates []*Tree
	for _, i := range starts {
		loc := Location{Pos: pos, I: i}
		results := in.resolveAt(loc, in.arena.Nil(), maxDepth)
		candidates = append(candidates, results...)
	}

	switch len(candidates) {
	case 0:
		panic(&ResolveError{Message: "parse failed: no complete derivation"})
	case 1:
		return candidates[0]
	default:
		panic(&ResolveError{Message: "ambiguous parse", Ambiguous: true, Candidates: candidates})
	}
}

func startSymbolOf(p *Parser) GrammarSymbol { return p.start }

// resolveAt reconstructs every tree obtainable by walking backward from
// loc through its back-links, consing each step's matched child onto
// right, and emitting (rule-name . right) once progress reaches 0 (the
// rule's start). depth is a recursion budget (spec §4.3's "resolve has a
// depth budget to guarantee termination on pathological grammars");
// exhausting it panics rather than silently truncating the result set.
func (in *Interpreter) resolveAt(loc Location, right *Tree, depth int) []*Tree {
	if depth <= 0 {
		panic(&ResolveError{Message: "resolve: depth budget exceeded"})
	}
	cell := in.parser.GetForest()[loc.Pos][loc.I]

	if cell.State.Progress == 0 {
		name, ok := in.ruleNames[cell.State.Rule]
		if !ok {
			name = "_"
		}
		return []*Tree{in.arena.Cons(in.arena.Symbol(name), right)}
	}

	var out []*Tree
	for _, link := range cell.Links {
		var children []*Tree
		if link.IsLeaf {
			tok := in.parser.GetSentence()[link.Child.Pos-1]
			children = []*Tree{in.leafTree(tok)}
		} else {
			children = in.resolveAt(link.Child, in.arena.Nil(), depth-1)
		}
		for _, child := range children {
			curr := in.arena.Cons(child, right)
			out = append(out, in.resolveAt(link.Prev, curr, depth-1)...)
		}
	}
	return out
}

// leafTree turns a scanned token into the Tree a pattern's macro body
// receives: the pattern's own name, carrying the raw lexeme as payload,
// same shape as a resolved rule node so both kinds of forest children
// compose uniformly under expand/eval (spec §4.3, §4.5).
func (in *Interpreter) leafTree(tok Token) *Tree {
	name, ok := in.lookupPatternName(tok.Pattern)
	if !ok {
		name = "_"
	}
	return in.arena.Cons(in.arena.Symbol(name), in.arena.Cons(in.arena.String(tok.Lexeme), in.arena.Nil()))
}

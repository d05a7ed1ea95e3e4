/*
Copyright (C) 2023  Carl-Philip Hänsch

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

// Earley recognizer producing a shared-packed parse forest. Spec §1 puts
// "the Earley recognizer" internals out of scope and treats it as a black
// box behind the §6 interface; a real implementation is still needed so
// the resolver (§4.3) and the ambiguity-detection testable property (§8)
// have something to exercise. This is a standard Earley chart parser with
// back-linked forest cells, shaped to exactly the interface
// original_source/src/eval/evaluator.cpp drives (getForest()[pos][i],
// back-links (prev, child), a dedicated Leaf marker).

// Prec is a rule/pattern precedence tag. Precedence is accepted and stored
// (spec §4.1's pattern/rule entries both carry one) but does not affect
// recognition here — disambiguation is entirely the resolver's job (spec
// §4.3's "ambiguity policy": report every parse rather than pick one), so
// there is nothing for precedence to arbitrate between in this core.
type Prec = uint64

// RHSSymbol is one (symbol, precedence) element of a rule's right-hand
// side (spec §4.1).
type RHSSymbol struct {
	Sym  GrammarSymbol
	Prec Prec
}

// Rule is a single grammar production, as returned by Parser.GetRule.
type Rule struct {
	LHS  GrammarSymbol
	Prec Prec
	RHS  []RHSSymbol
}

// Location addresses one forest cell: position pos, index i within that
// position's cell list (spec §6).
type Location struct {
	Pos, I int
}

// BackLink is one (prev, child) pair explaining how a forest item's dot
// advanced by one symbol. IsLeaf marks the terminal-scan case, where the
// matched child is the token at Sentence[Child.Pos-1] rather than another
// forest location (spec §6: "child is either a token leaf or another
// forest location").
type BackLink struct {
	Prev   Location
	IsLeaf bool
	Child  Location
}

// earleyItem identifies one Earley item: a rule instance started at
// StartPos with Progress symbols of its RHS already matched.
type earleyItem struct {
	StartPos int
	Rule     int
	Progress int
}

// ForestCell is one entry of the parse forest: an item plus every way
// (back-link) it was derived, shared/packed when more than one back-link
// exists (spec §4.3, §6).
type ForestCell struct {
	State earleyItem
	Links []BackLink
}

// ParserError mirrors the parser's popErrors() entries (spec §6): an
// expected-symbol mismatch encountered while scanning.
type ParserError struct {
	Expected         []GrammarSymbol
	Got              *GrammarSymbol
	StartPos, EndPos int
}

// Parser is the black-box Earley parser consumed by the core (spec §6).
type Parser struct {
	lexer *Lexer

	patternSym  []GrammarSymbol // index: pattern id -> syntactic category symbol
	patternPrec []Prec
	rules       []Rule

	ignored GrammarSymbol
	start   GrammarSymbol

	sentence []Token
	forest   [][]ForestCell
	errors   []ParserError
}

func newParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

func (p *Parser) ClearPatterns() {
	p.patternSym = nil
	p.patternPrec = nil
}

func (p *Parser) ClearRules() {
	p.rules = nil
}

func (p *Parser) SetIgnoredSymbol(sym GrammarSymbol) { p.ignored = sym }
func (p *Parser) SetStartSymbol(sym GrammarSymbol)   { p.start = sym }

// AddPattern registers pattern id sym's syntactic category and precedence,
// returning its sequential id (spec §6).
func (p *Parser) AddPattern(sym GrammarSymbol, prec Prec) int {
	p.patternSym = append(p.patternSym, sym)
	p.patternPrec = append(p.patternPrec, prec)
	return len(p.patternSym) - 1
}

// AddRule registers a production, returning its sequential id (spec §6).
func (p *Parser) AddRule(sym GrammarSymbol, prec Prec, rhs []RHSSymbol) int {
	p.rules = append(p.rules, Rule{LHS: sym, Prec: prec, RHS: rhs})
	return len(p.rules) - 1
}

func (p *Parser) GetRule(id int) Rule { return p.rules[id] }

func (p *Parser) GetSentence() []Token   { return p.sentence }
func (p *Parser) GetForest() [][]ForestCell { return p.forest }

func (p *Parser) PopErrors() []ParserError {
	errs := p.errors
	p.errors = nil
	return errs
}

// chart is the working state for one call to NextSentence: the forest
// built so far, plus per-position indexes used to dedup and link items.
type chart struct {
	forest [][]ForestCell
	index  []map[earleyItem]int // position -> item -> index within forest[pos]
}

func (c *chart) ensurePos(pos int) {
	for len(c.forest) <= pos {
		c.forest = append(c.forest, nil)
		c.index = append(c.index, map[earleyItem]int{})
	}
}

// getOrAdd returns the index of item within forest[pos], creating it (with
// no links yet) if absent, and reports whether it was freshly created.
func (c *chart) getOrAdd(pos int, item earleyItem) (int, bool) {
	c.ensurePos(pos)
	if i, ok := c.index[pos][item]; ok {
		return i, false
	}
	c.forest[pos] = append(c.forest[pos], ForestCell{State: item})
	i := len(c.forest[pos]) - 1
	c.index[pos][item] = i
	return i, true
}

func (c *chart) addLink(pos, i int, link BackLink) {
	// closure re-runs over a position whenever completion adds a fresh
	// item, so the same derivation step can be offered more than once;
	// keep one copy so it is not mistaken for a second derivation.
	for _, l := range c.forest[pos][i].Links {
		if l == link {
			return
		}
	}
	c.forest[pos][i].Links = append(c.forest[pos][i].Links, link)
}

// NextSentence runs the Earley recognizer over one more top-level
// statement's worth of tokens and returns false once input is exhausted
// with nothing left to parse (spec §6). Each call starts a fresh forest
// indexed from position 0, matching original_source's per-statement
// parser.getForest()/getSentence() query pattern. Whitespace/comment
// tokens (pattern category == the ignored symbol) are dropped from the
// sentence before it reaches the grammar, same as any conventional
// lexer/parser split.
func (p *Parser) NextSentence() bool {
	p.sentence = nil
	c := &chart{}
	c.ensurePos(0)
	p.seedPredictions(c, 0)
	p.closure(c, 0)

	if p.lexer.eof() && len(p.sentence) == 0 {
		p.forest = c.forest
		return false
	}

	for {
		if p.hasCompleteStart(c, len(p.sentence)) {
			break
		}
		tok := p.nextSignificantToken()
		if tok == nil {
			break
		}
		pos := len(p.sentence)
		p.sentence = append(p.sentence, *tok)
		c.ensurePos(pos + 1)
		p.scan(c, pos, *tok)
		p.closure(c, pos+1)
	}

	p.forest = c.forest
	return len(p.sentence) > 0
}

func (p *Parser) nextSignificantToken() *Token {
	for {
		tok := p.lexer.GetNextToken()
		if tok == nil {
			return nil
		}
		if p.patternSym[tok.Pattern] == p.ignored {
			continue
		}
		return tok
	}
}

// seedPredictions adds a fresh progress-0 item for every rule whose LHS is
// the start symbol, at the given position.
func (p *Parser) seedPredictions(c *chart, pos int) {
	for ri, r := range p.rules {
		if r.LHS == p.start {
			c.getOrAdd(pos, earleyItem{StartPos: pos, Rule: ri, Progress: 0})
		}
	}
}

// closure runs predict+complete at pos to a fixpoint (no scanning).
func (p *Parser) closure(c *chart, pos int) {
	c.ensurePos(pos)
	for i := 0; i < len(c.forest[pos]); i++ {
		item := c.forest[pos][i].State
		rule := p.rules[item.Rule]
		if item.Progress == len(rule.RHS) {
			// Complete: advance every waiting item at item.StartPos.
			p.completeAt(c, pos, i, item)
			continue
		}
		next := rule.RHS[item.Progress].Sym
		// Predict: seed progress-0 items for every rule producing next.
		for ri, r := range p.rules {
			if r.LHS == next {
				c.getOrAdd(pos, earleyItem{StartPos: pos, Rule: ri, Progress: 0})
			}
		}
	}
}

// completeAt advances every item at completedItem.StartPos that is
// waiting for the LHS the completed item produced, linking through the
// completed cell at (pos, completedIdx).
func (p *Parser) completeAt(c *chart, pos, completedIdx int, completed earleyItem) {
	lhs := p.rules[completed.Rule].LHS
	c.ensurePos(completed.StartPos)
	for wi := 0; wi < len(c.forest[completed.StartPos]); wi++ {
		waiting := c.forest[completed.StartPos][wi].State
		wrule := p.rules[waiting.Rule]
		if waiting.Progress >= len(wrule.RHS) || wrule.RHS[waiting.Progress].Sym != lhs {
			continue
		}
		advanced := earleyItem{StartPos: waiting.StartPos, Rule: waiting.Rule, Progress: waiting.Progress + 1}
		idx, fresh := c.getOrAdd(pos, advanced)
		c.addLink(pos, idx, BackLink{
			Prev:  Location{Pos: completed.StartPos, I: wi},
			Child: Location{Pos: pos, I: completedIdx},
		})
		if fresh {
			// Newly created at pos: fold it into this position's closure.
			p.closure(c, pos)
		}
	}
}

// scan advances every item at pos expecting a terminal that tok's pattern
// category satisfies, landing the advanced items at pos+1.
func (p *Parser) scan(c *chart, pos int, tok Token) {
	cat := p.patternSym[tok.Pattern]
	c.ensurePos(pos + 1)
	for i := 0; i < len(c.forest[pos]); i++ {
		item := c.forest[pos][i].State
		rule := p.rules[item.Rule]
		if item.Progress >= len(rule.RHS) || rule.RHS[item.Progress].Sym != cat {
			continue
		}
		advanced := earleyItem{StartPos: item.StartPos, Rule: item.Rule, Progress: item.Progress + 1}
		idx, _ := c.getOrAdd(pos+1, advanced)
		c.addLink(pos+1, idx, BackLink{
			Prev:   Location{Pos: pos, I: i},
			IsLeaf: true,
			Child:  Location{Pos: pos + 1, I: idx},
		})
	}
}

func (p *Parser) hasCompleteStart(c *chart, pos int) bool {
	c.ensurePos(pos)
	for _, cell := range c.forest[pos] {
		rule := p.rules[cell.State.Rule]
		if cell.State.StartPos == 0 && rule.LHS == p.start && cell.State.Progress == len(rule.RHS) {
			return true
		}
	}
	return false
}

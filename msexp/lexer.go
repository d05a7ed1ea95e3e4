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

// NFA-based lexer. Spec §1 puts "the NFA construction" internals out of
// scope and treats the lexer as a black box behind the interface in §6; a
// working implementation is still needed to drive the rest of the core.
// This is a close Go port of the reference lexer's interface and pattern
// constructors (original_source/src/parsing/lexer.hpp's NFALexer) —
// epsilon is transition byte 0, real bytes run 0x01-0xFF. No powerset/DFA
// compilation step is implemented, matching the spec's explicit exclusion
// of that construction; tokens are matched by direct epsilon-closure state
// set simulation over the NFA instead.

type lexState uint32

type lexTransition struct {
	ch byte // 0 means epsilon
	to lexState
}

type lexEntry struct {
	tr []lexTransition
	ac int // accepting pattern id, or -1
}

// NFA is a fragment: an (start, end) state pair, exactly as in the
// reference implementation.
type NFA struct {
	start, end lexState
}

// Token is a single lexeme recognized by the lexer, carrying the pattern ID
// that matched and its lexeme text plus position range (spec §6).
type Token struct {
	Pattern  int
	Lexeme   string
	StartPos int
	EndPos   int
}

// LexError mirrors the lexer's ErrorInfo (spec §6): a run of input the
// lexer could not tokenize at all.
type LexError struct {
	StartPos, EndPos int
	Lexeme           string
}

// Lexer is the black-box NFA lexer consumed by the core (spec §6).
type Lexer struct {
	table   []lexEntry
	initial lexState

	pos    int
	rest   string
	errors []LexError
}

func newLexer() *Lexer {
	l := &Lexer{}
	l.initial = l.node()
	return l
}

func (l *Lexer) node() lexState {
	l.table = append(l.table, lexEntry{ac: -1})
	return lexState(len(l.table) - 1)
}

func (l *Lexer) trans(s lexState, c byte, t lexState) {
	l.table[s].tr = append(l.table[s].tr, lexTransition{c, t})
}

// ClearPatterns resets the lexer to the empty pattern set (spec §6).
func (l *Lexer) ClearPatterns() {
	l.table = nil
	l.initial = l.node()
}

// AddPattern registers nfa as recognizing pattern id and returns id,
// mirroring NFALexer::addPattern — epsilon from the shared initial state
// into the fragment's start, and the fragment's end state accepts id.
func (l *Lexer) AddPattern(id int, nfa NFA) int {
	l.trans(l.initial, 0, nfa.start)
	if l.table[nfa.end].ac < 0 {
		l.table[nfa.end].ac = id
	}
	return id
}

//
// Pattern-builder constructors, one per original_source tag (spec §4.2).
//

func (l *Lexer) Empty() NFA {
	s, t := l.node(), l.node()
	l.trans(s, 0, t)
	return NFA{s, t}
}

func (l *Lexer) Any() NFA { return l.Range(0x01, 0xFF) }

func (l *Lexer) UTF8Segment() NFA { return l.Range(0x80, 0xFF) }

func (l *Lexer) Char(bs []byte) NFA {
	s, t := l.node(), l.node()
	for _, c := range bs {
		l.trans(s, c, t)
	}
	return NFA{s, t}
}

func (l *Lexer) Except(bs []byte) NFA {
	excluded := [0x100]bool{}
	for _, c := range bs {
		excluded[c] = true
	}
	s, t := l.node(), l.node()
	for i := 0x01; i <= 0xFF; i++ {
		if !excluded[i] {
			l.trans(s, byte(i), t)
		}
	}
	return NFA{s, t}
}

func (l *Lexer) Range(lo, hi byte) NFA {
	s, t := l.node(), l.node()
	for c := int(lo); c <= int(hi); c++ {
		l.trans(s, byte(c), t)
	}
	return NFA{s, t}
}

func (l *Lexer) Word(w []byte) NFA {
	s := l.node()
	t := s
	for _, c := range w {
		next := l.node()
		l.trans(t, c, next)
		t = next
	}
	return NFA{s, t}
}

func (l *Lexer) concat2(a, b NFA) NFA {
	for _, tr := range l.table[b.start].tr {
		l.trans(a.end, tr.ch, tr.to)
	}
	return NFA{a.start, b.end}
}

func (l *Lexer) Concat(fs []NFA) NFA {
	if len(fs) == 0 {
		return l.Empty()
	}
	res := fs[0]
	for _, f := range fs[1:] {
		res = l.concat2(res, f)
	}
	return res
}

func (l *Lexer) Alt(fs []NFA) NFA {
	s, t := l.node(), l.node()
	for _, f := range fs {
		l.trans(s, 0, f.start)
		l.trans(f.end, 0, t)
	}
	return NFA{s, t}
}

func (l *Lexer) Opt(f NFA) NFA { return l.Alt([]NFA{f, l.Empty()}) }

func (l *Lexer) Star(f NFA) NFA {
	s, t := l.node(), l.node()
	l.trans(s, 0, f.start)
	l.trans(f.end, 0, t)
	l.trans(f.end, 0, f.start)
	l.trans(s, 0, t)
	return NFA{s, t}
}

func (l *Lexer) Plus(f NFA) NFA { return l.concat2(f, l.Star(f)) }

//
// Scanning
//

// SetString resets scan position to the start of text (spec §6).
func (l *Lexer) SetString(text string) {
	l.pos = 0
	l.rest = text
}

func (l *Lexer) eof() bool { return len(l.rest) == 0 }

// epsilonClosure extends a state set with every state reachable purely via
// epsilon transitions, marking accepting states found along the way.
func (l *Lexer) epsilonClosure(states map[lexState]bool) {
	stack := make([]lexState, 0, len(states))
	for s := range states {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range l.table[s].tr {
			if tr.ch == 0 && !states[tr.to] {
				states[tr.to] = true
				stack = append(stack, tr.to)
			}
		}
	}
}

// run simulates the whole NFA over s and returns the longest match found
// (by byte length, ties broken by the smallest pattern id — i.e. the
// earliest-registered pattern wins, the usual lexer-generator convention).
func (l *Lexer) run(s string) (length int, pattern int, ok bool) {
	states := map[lexState]bool{l.initial: true}
	l.epsilonClosure(states)

	bestLen, bestPat, found := 0, 0, false
	if p, has := l.acceptingOf(states); has {
		bestLen, bestPat, found = 0, p, true
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		next := map[lexState]bool{}
		for st := range states {
			for _, tr := range l.table[st].tr {
				if tr.ch == c {
					next[tr.to] = true
				}
			}
		}
		if len(next) == 0 {
			break
		}
		l.epsilonClosure(next)
		states = next
		if p, has := l.acceptingOf(states); has {
			bestLen, bestPat, found = i+1, p, true
		}
	}
	return bestLen, bestPat, found
}

func (l *Lexer) acceptingOf(states map[lexState]bool) (int, bool) {
	best := -1
	for s := range states {
		if ac := l.table[s].ac; ac >= 0 {
			if best < 0 || ac < best {
				best = ac
			}
		}
	}
	return best, best >= 0
}

// GetNextToken consumes and returns the next token from the input set by
// SetString, or nil at end of input (spec §6). Bytes that cannot start any
// pattern are collected as a LexError and skipped one at a time.
func (l *Lexer) GetNextToken() *Token {
	for {
		if l.eof() {
			return nil
		}
		length, pattern, ok := l.run(l.rest)
		if !ok || length == 0 {
			// Unmatched byte; record and skip it, keep scanning.
			errStart := l.pos
			skipped := l.rest[:1]
			l.rest = l.rest[1:]
			l.pos++
			l.errors = append(l.errors, LexError{StartPos: errStart, EndPos: l.pos, Lexeme: skipped})
			continue
		}
		lexeme := l.rest[:length]
		tok := &Token{Pattern: pattern, Lexeme: lexeme, StartPos: l.pos, EndPos: l.pos + length}
		l.rest = l.rest[length:]
		l.pos += length
		return tok
	}
}

// PopErrors returns and clears the accumulated lex errors (spec §6).
func (l *Lexer) PopErrors() []LexError {
	errs := l.errors
	l.errors = nil
	return errs
}

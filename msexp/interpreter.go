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

import (
	"github.com/dc0d/onexit"
	"github.com/google/uuid"
)

// Options configures an Interpreter at construction time (SPEC_FULL.md
// "Configuration"). Every field has a zero value that produces the same
// behavior as the teacher's historic defaults.
type Options struct {
	// ArenaBlockSize overrides the tree arena's allocation block size.
	// Zero means defaultArenaBlockSize.
	ArenaBlockSize int
	// Trace, when non-nil, receives diagnostic events (SPEC_FULL.md
	// "Diagnostics"): one per debug_save_file call. Parsing and evaluating
	// a statement emit no events.
	Trace *Tracefile
	// MaxResolveDepth bounds the forest resolver's recursion (spec §4.3's
	// depth budget). Zero means defaultMaxResolveDepth.
	MaxResolveDepth int
}

// Interpreter owns every piece of mutable state for one independent
// metacircular evaluation session: the tree arena (spec §2 "Tree arena"),
// the grammar/lexer/parser triple (spec §2, §6), the macro and primitive
// registries, and the global environment. Nothing here is safe for
// concurrent use from more than one goroutine, matching spec §5's "single
// owner" rule — callers that want concurrency run one Interpreter per
// goroutine.
type Interpreter struct {
	id uuid.UUID

	arena *Arena

	symbols *symbolTable
	lexer   *Lexer
	parser  *Parser

	ruleNames map[int]string   // rule id -> bootstrap/macro pattern name
	macros    map[string]*Tree // pattern name -> macro transformer closure

	// syntaxPatterns/syntaxRules are the last two trees passed to setSyntax,
	// returned verbatim by get_syntax (spec §4.1's `(patterns rules)` pair).
	syntaxPatterns *Tree
	syntaxRules    *Tree

	prims *primitiveRegistry

	globalEnv *Tree
	globals   *globalSymbolIndex

	maxResolveDepth int
	trace           *Tracefile
}

const defaultMaxResolveDepth = 4096

// New constructs an Interpreter with the default bootstrap grammar (spec
// §4.8) and primitive registry (spec §4.7) already installed — equivalent
// to original_source's Evaluator constructor.
func New(opts Options) *Interpreter {
	blockSize := opts.ArenaBlockSize
	if blockSize == 0 {
		blockSize = defaultArenaBlockSize
	}
	maxDepth := opts.MaxResolveDepth
	if maxDepth == 0 {
		maxDepth = defaultMaxResolveDepth
	}

	in := &Interpreter{
		id:              uuid.New(),
		arena:           newArenaWithBlockSize(blockSize),
		symbols:         newSymbolTable(),
		ruleNames:       make(map[int]string),
		macros:          make(map[string]*Tree),
		prims:           newPrimitiveRegistry(),
		globals:         newGlobalSymbolIndex(),
		maxResolveDepth: maxDepth,
		trace:           opts.Trace,
	}
	in.lexer = newLexer()
	in.parser = newParser(in.lexer)
	in.globalEnv = in.arena.Nil()

	registerCoreForms(in)
	registerListPrimitives(in)
	registerStringPrimitives(in)
	registerNumPrimitives(in)
	registerIOPrimitives(in)
	installBootstrapGrammar(in)

	if in.trace != nil {
		// Mirrors the teacher's own onexit.Register(func() { scm.SetTrace(false) })
		// in storage/settings.go, repurposed to flush this interpreter's
		// diagnostic sink instead of a server-wide trace toggle.
		onexit.Register(func() { in.trace.Close() })
	}

	return in
}

// ID identifies this interpreter instance in diagnostic traces.
func (in *Interpreter) ID() uuid.UUID { return in.id }

// Close flushes and closes the diagnostic trace file, if one was configured.
// Safe to call even when Options.Trace was left nil.
func (in *Interpreter) Close() {
	if in.trace != nil {
		in.trace.Close()
	}
}

// Arena exposes the tree arena backing every value this interpreter ever
// produces (spec §2).
func (in *Interpreter) Arena() *Arena { return in.arena }

// GlobalEnv returns the interpreter's global environment tree (spec §3).
func (in *Interpreter) GlobalEnv() *Tree { return in.globalEnv }

// Feed resets the lexer to scan text from the start, discarding any
// partially-consumed input (spec §6's SetString).
func (in *Interpreter) Feed(text string) {
	in.lexer.SetString(text)
}

// ParseNextStatement recognizes and resolves the next top-level statement
// from the text most recently passed to Feed, returning the resolved tree
// or a *ParsingError/*ResolveError via panic on failure (mirrors
// original_source's nextSentence + resolve pairing, spec §4.3 + §6).
// The second return is false once input is exhausted.
func (in *Interpreter) ParseNextStatement() (*Tree, bool) {
	if !in.parser.NextSentence() {
		return nil, false
	}
	if errs := in.lexer.PopErrors(); len(errs) > 0 {
		e := errs[0]
		panic(&ParsingError{Message: "unrecognized input", StartPos: e.StartPos, EndPos: e.EndPos})
	}
	if errs := in.parser.PopErrors(); len(errs) > 0 {
		panic(&ParsingError{Message: "unexpected token", StartPos: errs[0].StartPos, EndPos: errs[0].EndPos})
	}
	tree := in.resolve(in.maxResolveDepth)
	return tree, true
}

// EvalSource feeds text, then parses and evaluates every statement it
// contains in sequence, returning the value of the last one (or Unit for
// empty input). This is the convenience entry point analogous to the
// teacher's top-level ParseDeclaration/Eval pairing in scm.go.
func (in *Interpreter) EvalSource(text string) *Tree {
	in.Feed(text)
	result := in.arena.Unit()
	for {
		stmt, ok := in.ParseNextStatement()
		if !ok {
			break
		}
		expanded := in.expand(stmt, in.globalEnv)
		result = in.Eval(expanded, in.globalEnv)
	}
	return result
}

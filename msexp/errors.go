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

import "fmt"

// ParsingError reports a lexer or parser error (spec §6, §7 kind 1). The
// lexer and parser collect their errors on side channels; after each
// statement is recognized, ParseNextStatement pops them and panics with a
// ParsingError for the first one, which aborts the statement and, inside
// EvalSource, the rest of the input. The remaining errors are discarded.
type ParsingError struct {
	Message            string
	StartPos, EndPos   int
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error at [%d,%d): %s", e.StartPos, e.EndPos, e.Message)
}

// ResolveError covers spec §7 kind 2: parse failure or ambiguity while
// reconstructing a tree from the parse forest (§4.3). Candidates holds every
// competing parse when the error is ambiguity; it is empty on failure.
type ResolveError struct {
	Message    string
	Ambiguous  bool
	Candidates []*Tree
}

func (e *ResolveError) Error() string { return e.Message }

// PartialEvalError is raised deep inside a primitive, match, or expansion
// and is missing the surrounding context (spec §6, §7 kind 3). It is caught
// at the nearest Eval or expand frame and turned into a complete EvalError.
// Mirrors original_source/src/eval/evaluator.cpp's PartialEvalError.
type PartialEvalError struct {
	Message string
	At      *Tree
}

func (e *PartialEvalError) Error() string { return e.Message }

// EvalError is the complete, decorated form of an evaluation failure: it
// additionally carries the tree that surrounded the failing subtree at the
// point evaluation or expansion unwound through it.
type EvalError struct {
	Message     string
	Offending   *Tree
	Surrounding *Tree
}

func (e *EvalError) Error() string { return e.Message }

// HostError covers spec §7 kind 4: failures of the outside world (e.g. a
// failed file open from debug_save_file) rather than of the program itself.
type HostError struct {
	Message string
	At      *Tree
}

func (e *HostError) Error() string { return e.Message }

// decorate turns a recovered PartialEvalError into a complete EvalError by
// attaching the surrounding tree, or re-panics unchanged for any other
// recovered value (a Go panic that isn't one of this package's error types
// is a programming bug, not an interpreter error, and must propagate).
// Mirrors the catch(PartialEvalError&) blocks in Evaluator::expand/eval in
// original_source/src/eval/evaluator.cpp.
func decorate(r any, surrounding *Tree) {
	if pe, ok := r.(*PartialEvalError); ok {
		panic(&EvalError{Message: pe.Message, Offending: pe.At, Surrounding: surrounding})
	}
	panic(r)
}

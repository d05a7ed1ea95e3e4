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

// Declaration registers one primitive with the evaluator (spec §4.7).
// EvalArgs controls whether Eval's generic Cons dispatch reduces the
// argument list to values before the call: true for an ordinary procedure
// (Fn receives values), false for a form whose operands must reach it
// unevaluated (lambda, cond, quote, ...). declare defaults EvalArgs to true
// whenever FormFn is nil, so the many ordinary-procedure call sites across
// the builtins_*.go files never need to set it themselves.
//
// Fn is the plain, non-tail shape: it returns a value outright. FormFn is
// for the handful of primitives that, in addition to controlling whether
// their own operands are pre-evaluated, also need to request a tail call
// back into Eval's loop (every evalArgs=false form, plus eval itself, which
// is evalArgs=true but still resumes the loop on its evaluated argument).
// A Declaration sets exactly one of Fn/FormFn.
//
// This mirrors the teacher's own Declare/Declaration pattern, generalized
// from a map[string]func(...Scmer) Scmer registry to one indexed by
// primitive id so that *Tree's TagPrim payload can stay a plain int.
type Declaration struct {
	Name     string
	EvalArgs bool
	Fn       func(in *Interpreter, env *Tree, args *Tree) *Tree
	FormFn   func(in *Interpreter, env, args *Tree) (tailTree, tailEnv, result *Tree, isTail bool)
}

// primitiveRegistry is the Interpreter-owned table of installed
// primitives, indexed both by name (for `lambda`/global-env lookup at
// bootstrap time) and by the sequential id stored in a TagPrim tree.
type primitiveRegistry struct {
	decls []Declaration
	byName map[string]int
}

func newPrimitiveRegistry() *primitiveRegistry {
	return &primitiveRegistry{byName: make(map[string]int)}
}

// declare installs def and returns its primitive id.
func (r *primitiveRegistry) declare(def Declaration) int {
	if def.FormFn == nil {
		def.EvalArgs = true
	}
	id := len(r.decls)
	r.decls = append(r.decls, def)
	r.byName[def.Name] = id
	return id
}

func (r *primitiveRegistry) byID(id int) *Declaration {
	return &r.decls[id]
}

// Declare installs a primitive, binding its name in the global environment
// to a TagPrim tree carrying its id (spec §4.7's "name to primitive-id
// map"). Mirrors the teacher's top-level Declare(env, def) call sites in
// its builtin registration files.
func Declare(in *Interpreter, def Declaration) {
	id := in.prims.declare(def)
	in.globalEnv = in.extend(in.globalEnv, def.Name, in.arena.Prim(id))
	in.globals.add(def.Name)
}

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

// Tree pattern matcher (spec §4.4). A pattern is itself a Tree: most shapes
// match structurally and bind pattern symbols into env as they go; `(quote
// p)` switches into a literal mode where symbols must match by name
// instead of binding, and `(unquote p)` switches back to binding mode from
// inside a quoted pattern — the same normal/quote duality quasiquote uses
// on the construction side (spec §4.6), mirrored here on the destructuring
// side. A pattern of the form `(... . t)` — head symbol `...` — matches
// iff the value is a list (`Nil` or `Cons`); `t` is never inspected.
//
// Grounded on the teacher's own match.go pattern-matching style (dispatch
// on pattern shape, bind into an environment, walk cons spines) adapted
// from its []Scmer/*Env list-and-map model onto *Tree/cons-list Environments.

const ellipsisSymbol = "..."

// Match attempts to unify pattern against value, starting in normal
// (binding) mode, and returns the extended environment plus whether it
// succeeded. env is left unchanged on failure.
func (in *Interpreter) Match(env, pattern, value *Tree) (*Tree, bool) {
	return in.matchMode(env, pattern, value, false)
}

func (in *Interpreter) matchMode(env, pattern, value *Tree, quoted bool) (*Tree, bool) {
	if !quoted {
		if pattern.Tag == TagSymbol {
			switch pattern.Str {
			case "_":
				return env, true
			case "quote":
				// bare `quote` used as a pattern head is handled by the
				// caller's cons case below; as a lone symbol it just binds.
			}
			return in.extend(env, pattern.Str, value), true
		}
		if pattern.Tag == TagCons && pattern.Head.Tag == TagSymbol && pattern.Head.Str == "quote" &&
			pattern.Tail.Tag == TagCons && pattern.Tail.Tail.Tag == TagNil {
			return in.matchMode(env, pattern.Tail.Head, value, true)
		}
	} else {
		if pattern.Tag == TagCons && pattern.Head.Tag == TagSymbol && pattern.Head.Str == "unquote" &&
			pattern.Tail.Tag == TagCons && pattern.Tail.Tail.Tag == TagNil {
			return in.matchMode(env, pattern.Tail.Head, value, false)
		}
	}

	if pattern.Tag == TagCons && pattern.Head.Tag == TagSymbol && pattern.Head.Str == ellipsisSymbol {
		return env, value.Tag == TagNil || value.Tag == TagCons
	}

	if quoted && pattern.Tag == TagSymbol {
		if value.Tag == TagSymbol && value.Str == pattern.Str {
			return env, true
		}
		return env, false
	}

	switch pattern.Tag {
	case TagNil, TagUnit, TagNat64, TagString, TagBool:
		if pattern.Equal(value) {
			return env, true
		}
		return env, false
	case TagCons:
		if value.Tag != TagCons {
			return env, false
		}
		env2, ok := in.matchMode(env, pattern.Head, value.Head, quoted)
		if !ok {
			return env, false
		}
		return in.matchMode(env2, pattern.Tail, value.Tail, quoted)
	default:
		return env, pattern.Equal(value)
	}
}

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
	"bytes"
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// I/O and diagnostics-adjacent primitives (SPEC_FULL.md "Domain stack" /
// spec §4.7). print/display are the teacher's usual console primitives;
// debug_save_file snapshots a tree's printed form to disk, optionally
// compressed — this is the one place the interpreter core touches the
// filesystem at all, and it exists purely as a debugging aid, never on
// any evaluation hot path.
func registerIOPrimitives(in *Interpreter) {
	Declare(in, Declaration{Name: "print", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		for it := args; it.Tag == TagCons; it = it.Tail {
			fmt.Print(it.Head.String())
		}
		fmt.Println()
		return in.arena.Unit()
	}})
	Declare(in, Declaration{Name: "display", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		v := expectCons(args, "display: argument").Head
		if v.Tag == TagString {
			fmt.Print(v.Str)
		} else {
			fmt.Print(v.String())
		}
		return v
	}})
	Declare(in, Declaration{Name: "debug_save_file", Fn: func(in *Interpreter, env, args *Tree) *Tree {
		path := expectString(expectCons(args, "debug_save_file: path").Head, "debug_save_file: path")
		value := expectCons(args.Tail, "debug_save_file: value").Head
		codec := "none"
		if args.Tail.Tail.Tag == TagCons {
			codec = expectSymbol(args.Tail.Tail.Head, "debug_save_file: codec").Str
		}
		payload := []byte(value.String())
		encoded, err := encodeDebugPayload(codec, payload)
		if err != nil {
			panic(&HostError{Message: err.Error(), At: value})
		}
		if err := os.WriteFile(path.Str, encoded, 0o644); err != nil {
			panic(&HostError{Message: err.Error(), At: value})
		}
		traceDebugSave(in, path.Str, len(payload), len(encoded))
		return in.arena.Unit()
	}})
}

// encodeDebugPayload compresses raw with the named codec, wiring
// pierrec/lz4 and ulikunitz/xz the way SPEC_FULL.md's domain stack section
// assigns them: lz4 for the fast/low-ratio path, xz for the slow/high-ratio
// path, "none" for an uncompressed dump.
func encodeDebugPayload(codec string, raw []byte) ([]byte, error) {
	switch codec {
	case "none", "":
		return raw, nil
	case "lz4":
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "xz":
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("debug_save_file: unknown codec %q", codec)
	}
}

// traceDebugSave emits a human-sized before/after byte count to the
// interpreter's trace file, formatted through docker/go-units.
func traceDebugSave(in *Interpreter, path string, rawLen, encodedLen int) {
	if in.trace == nil {
		return
	}
	in.trace.Event(
		fmt.Sprintf("debug_save_file %s: %s -> %s", path, units.BytesSize(float64(rawLen)), units.BytesSize(float64(encodedLen))),
		"io", "X",
	)
}

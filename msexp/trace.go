/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/jtolds/gls"
)

// Tracefile is a Chrome trace-event-format JSON writer carried over from
// the teacher's own diagnostics (SPEC_FULL.md "Diagnostics"), generalized
// so each event records the goroutine-local call stack pushed by
// withCallFrame at the time. The Interpreter instance is not recorded per
// event; only traceAlloc puts the instance uuid into its event name. It is
// entirely optional: an Interpreter built with Options.Trace left nil
// never touches this file.
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
}

var glsMgr = gls.NewContextManager()

const callStackKey = "msexp-call-stack"

// withCallFrame pushes name onto the goroutine-local evaluation call stack
// for the duration of f, restoring the previous stack on return — mirrors
// the teacher's use of jtolds/gls to thread request-scoped state through
// call chains that don't otherwise carry a context parameter.
func withCallFrame(name string, f func()) {
	prev, _ := glsMgr.GetValue(callStackKey)
	var stack []string
	if s, ok := prev.([]string); ok {
		stack = s
	}
	next := append(append([]string{}, stack...), name)
	glsMgr.SetValues(gls.Values{callStackKey: next}, f)
}

// callStack returns the goroutine-local evaluation call stack pushed by
// withCallFrame, deepest frame last.
func callStack() []string {
	v, ok := glsMgr.GetValue(callStackKey)
	if !ok {
		return nil
	}
	stack, _ := v.([]string)
	return stack
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	return &Tracefile{file: file, isFirst: true}
}

func (t *Tracefile) Close() {
	t.file.Write([]byte("]"))
	t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B")
	defer t.EventHalf(name, cat, "E")
	f()
}

func (t *Tracefile) Event(name string, cat string, typ string) {
	t.EventHalf(name, cat, typ)
}

func (t *Tracefile) EventHalf(name string, cat string, typ string) {
	ts := time.Since(traceStart).Microseconds()
	t.EventFull(name, cat, typ, ts)
}

// EventFull writes one trace-event-format record, with the current
// goroutine-local call stack folded into "args". The record carries no
// Interpreter uuid; pid and tid are always 0.
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64) {
	t.m.Lock()
	defer t.m.Unlock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	record := struct {
		Name  string   `json:"name"`
		Cat   string   `json:"cat"`
		Ph    string   `json:"ph"`
		Ts    int64    `json:"ts"`
		Pid   int      `json:"pid"`
		Tid   int      `json:"tid"`
		Scope string   `json:"s"`
		Args  struct {
			Stack []string `json:"stack,omitempty"`
		} `json:"args"`
	}{Name: name, Cat: cat, Ph: typ, Ts: ts, Pid: 0, Tid: 0, Scope: "g"}
	record.Args.Stack = callStack()
	b, _ := json.Marshal(record)
	t.file.Write(b)
}

var traceStart time.Time = time.Now()

// traceAlloc emits an arena-growth event formatted with docker/go-units so
// the trace reads in human sizes ("128 kB") instead of raw node counts.
func traceAlloc(in *Interpreter) {
	if in.trace == nil {
		return
	}
	st := in.arena.Stats()
	approxBytes := st.Nodes * 96 // rough per-node footprint for display only
	in.trace.Event(
		fmt.Sprintf("arena:%s nodes=%d (%s) blocks=%d", in.id, st.Nodes, units.BytesSize(float64(approxBytes)), st.Blocks),
		"alloc", "X",
	)
}

// traceInstance renders an Interpreter's uuid as the string form used to
// tag trace events. Nothing in this package calls it.
func traceInstance(id uuid.UUID) string { return id.String() }

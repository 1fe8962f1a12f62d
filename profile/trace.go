/*
Copyright (C) 2026  Carl-Philip Hänsch

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
package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Tracefile writes profile transitions in the chrome trace event format
// (load it in chrome://tracing or perfetto).
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
}

var trace atomic.Pointer[Tracefile]

func currentTrace() *Tracefile { return trace.Load() }

// SetTrace opens a new trace file or closes the current one.
func SetTrace(on bool) error {
	if old := trace.Swap(nil); old != nil {
		old.Close()
	}
	if !on {
		return nil
	}
	name := filepath.Join(CurrentSettings().TraceDir, "profile_trace_"+fmt.Sprint(time.Now().Unix())+".json")
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	trace.Store(NewTrace(f))
	Logger().Info("tracing profile transitions to %s", name)
	return nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() error {
	t.m.Lock()
	defer t.m.Unlock()
	t.file.Write([]byte("]"))
	return t.file.Close()
}

// Transition records one state change as an instant event.
func (t *Tracefile) Transition(name string, kind Kind, from, to Tag) {
	t.EventFull(name, "profile,"+kind.String(), "i", time.Since(start).Microseconds(), map[string]string{
		"from": from.String(),
		"to":   to.String(),
	})
}

/*
*

	@name string event name
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, i for instant events
	@ts timestamp in microseconds
	@args free form event arguments
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, args map[string]string) {
	event := struct {
		Name string            `json:"name"`
		Cat  string            `json:"cat"`
		Ph   string            `json:"ph"`
		Ts   int64             `json:"ts"`
		Pid  int               `json:"pid"`
		Tid  int               `json:"tid"`
		S    string            `json:"s"`
		Args map[string]string `json:"args,omitempty"`
	}{name, cat, typ, ts, os.Getpid(), 0, "g", args}
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	t.m.Lock()
	defer t.m.Unlock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write(b)
}

var start time.Time = time.Now()

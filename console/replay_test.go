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
package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

const stream = `# calls of a binary operator
new lhs type
new rhs type inline
new count int inline

lhs 1
rhs 2.5
count 7
lhs 2
rhs "x"
count 7
`

func TestReplay(t *testing.T) {
	c, _ := newTestConsole(t)
	n, err := c.Replay("stream", strings.NewReader(stream))
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("expected 6 observations, got %d", n)
	}
	want := map[string]string{
		"lhs":   "ExactTypeProfile(exact: int64)",
		"rhs":   "InlinedExactTypeProfile(generic)",
		"count": "InlinedIntValueProfile(exact: 7)",
	}
	for name, desc := range want {
		if s := c.Registry.Lookup(name); s == nil || s.String() != desc {
			t.Errorf("%s: expected %s, got %v", name, desc, s)
		}
	}
}

func TestReplayErrorsCarryLine(t *testing.T) {
	c, _ := newTestConsole(t)
	_, err := c.Replay("bad", strings.NewReader("new a int\na 1\na one\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "bad:3:") {
		t.Errorf("expected error on line 3, got %v", err)
	}
	_, err = c.Replay("bad", strings.NewReader("a 1 2\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "bad:1:") {
		t.Errorf("expected error on line 1, got %v", err)
	}
}

func TestReplayFileXZ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.txt.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(stream))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	c, out := newTestConsole(t)
	mustExec(t, c, "replay "+path)
	if !strings.Contains(out.String(), ": 6 observations") {
		t.Errorf("unexpected output %q", out.String())
	}
	if s := c.Registry.Lookup("count"); s == nil || s.IsGeneric() {
		t.Errorf("xz stream not replayed: %v", s)
	}

	plain := filepath.Join(dir, "stream.txt")
	os.WriteFile(plain, []byte(stream), 0644)
	c2, _ := newTestConsole(t)
	if n, err := c2.ReplayFile(plain); err != nil || n != 6 {
		t.Errorf("plain replay: %d %v", n, err)
	}
	if _, err := c2.ReplayFile(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("missing file accepted")
	}
}

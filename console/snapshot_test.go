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
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/launix-de/speculate/profile"
	"github.com/pierrec/lz4/v4"
)

func readSnapshot(t *testing.T, r io.Reader) profile.RegistrySnapshot {
	t.Helper()
	var snap profile.RegistrySnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	return snap
}

func TestDumpStdout(t *testing.T) {
	c, out := newTestConsole(t)
	mustExec(t, c, "new a double", "profile a 2.5")
	out.Reset()
	mustExec(t, c, "dump")
	snap := readSnapshot(t, out)
	if len(snap.Sites) != 1 || snap.Sites[0].Value != "2.5" || snap.Sites[0].State != "exact" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.Registry != c.Registry.ID().String() {
		t.Errorf("snapshot names registry %s", snap.Registry)
	}
}

func TestDumpFiles(t *testing.T) {
	c, _ := newTestConsole(t)
	mustExec(t, c, "new a bool", "new b short inline", "profile a true", "profile b 1 2")
	dir := t.TempDir()

	plain := filepath.Join(dir, "snap.json")
	mustExec(t, c, "dump "+plain)
	f, err := os.Open(plain)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if snap := readSnapshot(t, f); len(snap.Sites) != 2 {
		t.Errorf("expected 2 sites, got %+v", snap.Sites)
	}

	packed := filepath.Join(dir, "snap.json.lz4")
	mustExec(t, c, "dump "+packed)
	g, err := os.Open(packed)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	snap := readSnapshot(t, lz4.NewReader(g))
	if len(snap.Sites) != 2 || snap.Sites[1].Name != "b" || snap.Sites[1].State != "generic" {
		t.Errorf("unexpected lz4 snapshot %+v", snap.Sites)
	}

	if err := c.Exec("dump " + filepath.Join(dir, "missing", "snap.json")); err == nil {
		t.Errorf("dump into a missing directory succeeded")
	}
}

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
	"bytes"
	"encoding/json"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := NewIntProfile()
	b := NewDoubleProfile()
	if prev := r.Register("loop.counter", a); prev != nil {
		t.Errorf("fresh name returned %v", prev)
	}
	r.Register("call.arg0", b)
	if prev := r.Register("loop.counter", b); prev != a {
		t.Errorf("expected previous site back, got %v", prev)
	}
	r.Register("loop.counter", a)
	if r.Len() != 2 {
		t.Errorf("expected 2 sites, got %d", r.Len())
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "call.arg0" || names[1] != "loop.counter" {
		t.Errorf("unexpected names %v", names)
	}
	if r.Lookup("missing") != nil {
		t.Errorf("lookup of unknown name succeeded")
	}
	if s := r.Lookup("loop.counter"); s != a {
		t.Errorf("lookup returned %v", s)
	}
}

func TestRegistryBind(t *testing.T) {
	l := NewLayout()
	p := InlineLong(l.Reserve(KindLong))
	st := l.NewState()
	r := NewRegistry()
	r.Register("inlined", Bind(p, st))

	site := r.Lookup("inlined")
	if !site.IsUninitialized() || site.Kind() != KindLong {
		t.Fatalf("unexpected bound site %v", site)
	}
	p.Profile(st, 1<<40)
	if s := site.State(); s.Tag != TagExact || FormatBits(site.Kind(), s.Bits) != "1099511627776" {
		t.Errorf("bound site does not see the host state: %v", site)
	}
	site.Disable()
	if !p.IsGeneric(st) {
		t.Errorf("disable through the site did not reach the profile")
	}
	site.Reset()
	if !p.IsUninitialized(st) || site.Hash() != p.Hash() {
		t.Errorf("reset through the site did not reach the profile")
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	i := NewIntProfile()
	e := NewExactTypeProfile()
	g := NewBoolProfile()
	r.Register("int", i)
	r.Register("type", e)
	r.Register("bool", g)
	i.Profile(-3)
	e.Profile(1.5)
	g.Profile(true)
	g.Profile(false)

	var buf bytes.Buffer
	if err := r.WriteSnapshot(&buf); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	var snap RegistrySnapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v\n%s", err, buf.String())
	}
	if snap.Registry != r.ID().String() || snap.ID == "" || snap.ID == snap.Registry {
		t.Errorf("unexpected ids %q %q", snap.ID, snap.Registry)
	}
	want := map[string]SiteSnapshot{
		"bool": {Name: "bool", Kind: "bool", State: "generic"},
		"int":  {Name: "int", Kind: "int", State: "exact", Value: "-3"},
		"type": {Name: "type", Kind: "exacttype", State: "exact", Value: "float64"},
	}
	if len(snap.Sites) != len(want) {
		t.Fatalf("expected %d sites, got %d", len(want), len(snap.Sites))
	}
	for _, s := range snap.Sites {
		w := want[s.Name]
		w.Hash = s.Hash
		if s != w {
			t.Errorf("site %s: expected %+v, got %+v", s.Name, w, s)
		}
	}
}

func TestFormatBits(t *testing.T) {
	cases := []struct {
		kind Kind
		bits uint64
		want string
	}{
		{KindBool, 1, "true"},
		{KindByte, 0xff, "-1"},
		{KindShort, 0x8000, "-32768"},
		{KindInt, 42, "42"},
		{KindLong, ^uint64(0), "-1"},
		{KindFloat, 0x3fc00000, "1.5"},
		{KindDouble, 0x4004000000000000, "2.5"},
	}
	for _, c := range cases {
		if got := FormatBits(c.kind, c.bits); got != c.want {
			t.Errorf("FormatBits(%v, %#x) = %q, want %q", c.kind, c.bits, got, c.want)
		}
	}
}

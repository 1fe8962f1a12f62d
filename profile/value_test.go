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
	"errors"
	"math"
	"testing"
)

// checkValueProfile runs the lattice properties for one kind over a set of
// pairwise distinct values.
func checkValueProfile[T comparable](t *testing.T, name string, create func() ValueProfile[T], values []T) {
	t.Helper()
	for i, v0 := range values {
		p := create()
		if !p.IsUninitialized() || p.IsGeneric() {
			t.Fatalf("%s: fresh profile in state %v", name, p.State().Tag)
		}
		for n := 0; n < 3; n++ {
			if r := p.Profile(v0); r != v0 {
				t.Fatalf("%s: profile(%v) returned %v", name, v0, r)
			}
		}
		c, err := p.CachedValue()
		if err != nil || c != v0 {
			t.Errorf("%s: expected cached %v, got %v (%v)", name, v0, c, err)
		}
		for j, v1 := range values {
			q := create()
			q.Profile(v0)
			q.Profile(v1)
			if i == j {
				if q.IsGeneric() {
					t.Errorf("%s: %v twice is generic", name, v0)
				}
				continue
			}
			if !q.IsGeneric() {
				t.Errorf("%s: %v then %v is %v", name, v0, v1, q)
			}
			if _, err := q.CachedValue(); !errors.Is(err, ErrNotApplicable) {
				t.Errorf("%s: expected ErrNotApplicable, got %v", name, err)
			}
			// terminal
			q.Profile(v0)
			q.Profile(v0)
			if !q.IsGeneric() {
				t.Errorf("%s: left the generic state", name)
			}
			_ = q.String()
		}
	}
}

func TestBoolProfile(t *testing.T) {
	checkValueProfile(t, "bool", NewBoolProfile, []bool{false, true})
}

func TestByteProfile(t *testing.T) {
	checkValueProfile(t, "byte", NewByteProfile, []int8{0, 1, -1, math.MinInt8, math.MaxInt8})
}

func TestShortProfile(t *testing.T) {
	checkValueProfile(t, "short", NewShortProfile, []int16{0, 1, -1, math.MinInt16, math.MaxInt16})
}

func TestIntProfile(t *testing.T) {
	checkValueProfile(t, "int", NewIntProfile, []int32{0, 1, -1, 42, math.MinInt32, math.MaxInt32})
}

func TestLongProfile(t *testing.T) {
	checkValueProfile(t, "long", NewLongProfile, []int64{0, 1, -1, 1 << 40, math.MinInt64, math.MaxInt64})
}

func TestFloatProfile(t *testing.T) {
	checkValueProfile(t, "float", NewFloatProfile, []float32{0, 1, -1.5, math.MaxFloat32, float32(math.Inf(1))})
}

func TestDoubleProfile(t *testing.T) {
	checkValueProfile(t, "double", NewDoubleProfile, []float64{0, 1, -1.5, math.MaxFloat64, math.Inf(-1)})
}

func TestFloatComparesBits(t *testing.T) {
	p := NewDoubleProfile()
	nan := math.NaN()
	p.Profile(nan)
	p.Profile(nan)
	if p.IsGeneric() {
		t.Errorf("same NaN twice is generic")
	}
	c, err := p.CachedValue()
	if err != nil || !math.IsNaN(c) {
		t.Errorf("expected cached NaN, got %v (%v)", c, err)
	}

	q := NewFloatProfile()
	q.Profile(0)
	q.Profile(float32(math.Copysign(0, -1)))
	if !q.IsGeneric() {
		t.Errorf("+0 and -0 treated as equal")
	}
}

func TestDisableAndReset(t *testing.T) {
	p := NewIntProfile()
	p.Profile(7)
	p.Disable()
	if !p.IsGeneric() {
		t.Fatalf("disable did not widen")
	}
	if r := p.Profile(7); r != 7 || !p.IsGeneric() {
		t.Errorf("disabled profile changed: %v", p)
	}
	p.Reset()
	if !p.IsUninitialized() {
		t.Fatalf("reset did not clear: %v", p)
	}
	p.Profile(8)
	if c, err := p.CachedValue(); err != nil || c != 8 {
		t.Errorf("expected 8 after reset, got %v (%v)", c, err)
	}

	l := NewLongProfile()
	l.Profile(-5)
	l.Disable()
	l.Reset()
	l.Profile(math.MaxInt64)
	if c, err := l.CachedValue(); err != nil || c != math.MaxInt64 {
		t.Errorf("wide profile after reset: %v (%v)", c, err)
	}
}

func TestNotApplicableError(t *testing.T) {
	p := NewShortProfile()
	_, err := p.CachedValue()
	var nae *NotApplicableError
	if !errors.As(err, &nae) {
		t.Fatalf("expected *NotApplicableError, got %T", err)
	}
	if nae.Kind != KindShort || nae.Tag != TagUninitialized || nae.Uncached {
		t.Errorf("unexpected error fields: %+v", nae)
	}

	_, err = UncachedShort().CachedValue()
	if !errors.As(err, &nae) || !nae.Uncached {
		t.Errorf("uncached error not marked: %v", err)
	}
}

func TestDescriptions(t *testing.T) {
	p := NewIntProfile()
	if got := p.String(); got != "IntValueProfile(uninitialized)" {
		t.Errorf("unexpected description %q", got)
	}
	p.Profile(42)
	if got := p.String(); got != "IntValueProfile(exact: 42)" {
		t.Errorf("unexpected description %q", got)
	}
	p.Profile(43)
	if got := p.String(); got != "IntValueProfile(generic)" {
		t.Errorf("unexpected description %q", got)
	}
	e := NewExactTypeProfile()
	e.Profile("")
	if got := e.String(); got != "ExactTypeProfile(exact: string)" {
		t.Errorf("unexpected description %q", got)
	}
	if got := UncachedDouble().String(); got != "DoubleValueProfile(uncached)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestProfileIdentity(t *testing.T) {
	a := NewIntProfile()
	b := NewIntProfile()
	if a.Equal(b) || a.Hash() == b.Hash() {
		t.Errorf("distinct profiles are equal")
	}
	a.Profile(1)
	b.Profile(1)
	if a.Equal(b) {
		t.Errorf("profiles compare by state")
	}
	h := a.Hash()
	a.Profile(2)
	if a.Hash() != h || !a.Equal(a) {
		t.Errorf("identity changed with state")
	}
}

func TestCreateRespectsSettings(t *testing.T) {
	defer profilingEnabled.Store(profilingEnabled.Load())
	profilingEnabled.Store(false)
	if p := CreateIntProfile(); !p.Equal(UncachedInt()) {
		t.Errorf("disabled profiling created %v", p)
	}
	if p := CreateExactTypeProfile(); !p.Equal(UncachedExactType()) {
		t.Errorf("disabled profiling created %v", p)
	}
	if p := InlineByte(Slot{}); !p.Equal(UncachedInlinedByte()) {
		t.Errorf("disabled profiling inlined %v", p)
	}
	profilingEnabled.Store(true)
	if p := CreateIntProfile(); p.Equal(UncachedInt()) {
		t.Errorf("enabled profiling returned the uncached profile")
	}
}

func TestUncachedScalars(t *testing.T) {
	p := UncachedInt()
	for _, v := range []int32{0, 1, -7} {
		if r := p.Profile(v); r != v {
			t.Errorf("profile(%d) returned %d", v, r)
		}
		if !p.IsGeneric() || p.IsUninitialized() {
			t.Errorf("uncached profile is not generic")
		}
	}
	p.Reset()
	if !p.IsGeneric() {
		t.Errorf("reset changed the uncached profile")
	}
	q := UncachedInlinedLong()
	if r := q.Profile(nil, 5); r != 5 || !q.IsGeneric(nil) {
		t.Errorf("uncached inlined profile is not transparent")
	}
}

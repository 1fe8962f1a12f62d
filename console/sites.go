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
	"fmt"

	"github.com/launix-de/speculate/profile"
)

// site is a named profile together with the literal syntax of its kind.
type site struct {
	name    string
	kind    profile.Kind
	inlined bool
	profile.Site
	// prepare parses a literal once and returns the observation; the
	// stress driver calls the result in its hot loop
	prepare func(literal string) (func(), error)
	cached  func() (string, error)
}

func (s site) GetKey() string    { return s.name }
func (s site) ComputeSize() uint { return 16 + uint(len(s.name)) + 8*6 }

func ownedValue[T any](name string, p profile.ValueProfile[T], parse func(string) (T, error)) *site {
	return &site{
		name: name,
		kind: p.Kind(),
		Site: p,
		prepare: func(literal string) (func(), error) {
			v, err := parse(literal)
			if err != nil {
				return nil, err
			}
			return func() { p.Profile(v) }, nil
		},
		cached: func() (string, error) {
			v, err := p.CachedValue()
			if err != nil {
				return "", err
			}
			return fmt.Sprint(v), nil
		},
	}
}

func inlinedValue[T any](name string, p profile.InlinedValueProfile[T], st *profile.State, parse func(string) (T, error)) *site {
	return &site{
		name:    name,
		kind:    p.Kind(),
		inlined: true,
		Site:    profile.Bind(p, st),
		prepare: func(literal string) (func(), error) {
			v, err := parse(literal)
			if err != nil {
				return nil, err
			}
			return func() { p.Profile(st, v) }, nil
		},
		cached: func() (string, error) {
			v, err := p.CachedValue(st)
			if err != nil {
				return "", err
			}
			return fmt.Sprint(v), nil
		},
	}
}

func ownedExactType(name string, p profile.ExactTypeProfile) *site {
	return &site{
		name: name,
		kind: profile.KindExactType,
		Site: p,
		prepare: func(literal string) (func(), error) {
			v, err := ParseLiteral(literal)
			if err != nil {
				return nil, err
			}
			return func() { p.Profile(v) }, nil
		},
		cached: func() (string, error) {
			t, err := p.CachedType()
			if err != nil {
				return "", err
			}
			return t.String(), nil
		},
	}
}

func inlinedExactType(name string, p profile.InlinedExactTypeProfile, st *profile.State) *site {
	return &site{
		name:    name,
		kind:    profile.KindExactType,
		inlined: true,
		Site:    profile.Bind(p, st),
		prepare: func(literal string) (func(), error) {
			v, err := ParseLiteral(literal)
			if err != nil {
				return nil, err
			}
			return func() { p.Profile(st, v) }, nil
		},
		cached: func() (string, error) {
			t, err := p.CachedType(st)
			if err != nil {
				return "", err
			}
			return t.String(), nil
		},
	}
}

// newOwnedSite honors the enabled setting through the Create* constructors.
func newOwnedSite(name string, kind profile.Kind) *site {
	switch kind {
	case profile.KindExactType:
		return ownedExactType(name, profile.CreateExactTypeProfile())
	case profile.KindBool:
		return ownedValue(name, profile.CreateBoolProfile(), parseBool)
	case profile.KindByte:
		return ownedValue(name, profile.CreateByteProfile(), parseByte)
	case profile.KindShort:
		return ownedValue(name, profile.CreateShortProfile(), parseShort)
	case profile.KindInt:
		return ownedValue(name, profile.CreateIntProfile(), parseInt)
	case profile.KindLong:
		return ownedValue(name, profile.CreateLongProfile(), parseLong)
	case profile.KindFloat:
		return ownedValue(name, profile.CreateFloatProfile(), parseFloat)
	case profile.KindDouble:
		return ownedValue(name, profile.CreateDoubleProfile(), parseDouble)
	}
	return nil
}

func newInlinedSite(name string, kind profile.Kind, slot profile.Slot, st *profile.State) *site {
	switch kind {
	case profile.KindExactType:
		return inlinedExactType(name, profile.InlineExactType(slot), st)
	case profile.KindBool:
		return inlinedValue(name, profile.InlineBool(slot), st, parseBool)
	case profile.KindByte:
		return inlinedValue(name, profile.InlineByte(slot), st, parseByte)
	case profile.KindShort:
		return inlinedValue(name, profile.InlineShort(slot), st, parseShort)
	case profile.KindInt:
		return inlinedValue(name, profile.InlineInt(slot), st, parseInt)
	case profile.KindLong:
		return inlinedValue(name, profile.InlineLong(slot), st, parseLong)
	case profile.KindFloat:
		return inlinedValue(name, profile.InlineFloat(slot), st, parseFloat)
	case profile.KindDouble:
		return inlinedValue(name, profile.InlineDouble(slot), st, parseDouble)
	}
	return nil
}

// host is a block of state words shared by inlined sites. A State cannot
// grow while profiles use it, so a new host is started once the current
// one is full.
type host struct {
	layout *profile.Layout
	state  *profile.State
}

const hostWords = 4

func (c *Console) reserve(kind profile.Kind) (profile.Slot, *profile.State) {
	if n := len(c.hosts); n > 0 {
		h := c.hosts[n-1]
		if h.layout.WordsWith(kind) <= hostWords {
			return h.layout.Reserve(kind), h.state
		}
	}
	h := &host{profile.NewLayout(), profile.NewState(hostWords)}
	c.hosts = append(c.hosts, h)
	return h.layout.Reserve(kind), h.state
}

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

import "reflect"

// ExactTypeProfile records the exact runtime type of the values seen at a
// program point. The compiler uses it to emit a type guard followed by a
// direct, non-virtual fast path.
type ExactTypeProfile interface {
	Profile(v any) any
	Disable()
	Reset()
	IsUninitialized() bool
	IsGeneric() bool
	CachedType() (reflect.Type, error)
	State() Snapshot
	Kind() Kind
	Hash() uint64
	Equal(other any) bool
	String() string
}

type exactType struct {
	*cachedValue[reflect.Type]
}

func (p exactType) Profile(v any) any {
	t := reflect.TypeOf(v)
	if t == nil {
		// absent values have no type to speculate on
		p.cachedValue.Disable()
		return v
	}
	p.cachedValue.Profile(t)
	return v
}

func (p exactType) CachedType() (reflect.Type, error) { return p.cachedValue.CachedValue() }

func (p exactType) Equal(other any) bool {
	q, ok := other.(exactType)
	return ok && q.cachedValue == p.cachedValue
}

// InlinedExactTypeProfile is the exact type profile on borrowed storage.
type InlinedExactTypeProfile interface {
	Profile(st *State, v any) any
	Disable(st *State)
	Reset(st *State)
	IsUninitialized(st *State) bool
	IsGeneric(st *State) bool
	CachedType(st *State) (reflect.Type, error)
	State(st *State) Snapshot
	Describe(st *State) string
	Kind() Kind
	Slot() Slot
	Hash() uint64
	Equal(other any) bool
	String() string
}

type inlinedExactType struct {
	*inlinedValue[reflect.Type]
}

func (p inlinedExactType) Profile(st *State, v any) any {
	t := reflect.TypeOf(v)
	if t == nil {
		p.inlinedValue.Disable(st)
		return v
	}
	p.inlinedValue.Profile(st, t)
	return v
}

func (p inlinedExactType) CachedType(st *State) (reflect.Type, error) {
	return p.inlinedValue.CachedValue(st)
}

func (p inlinedExactType) Equal(other any) bool {
	q, ok := other.(inlinedExactType)
	return ok && q.inlinedValue == p.inlinedValue
}

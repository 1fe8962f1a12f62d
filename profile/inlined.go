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

// InlinedValueProfile is a value profile whose state lives in a host
// State. Every operation takes that State explicitly; the profile itself
// only knows its slot.
type InlinedValueProfile[T any] interface {
	Profile(st *State, v T) T
	Disable(st *State)
	Reset(st *State)
	IsUninitialized(st *State) bool
	IsGeneric(st *State) bool
	CachedValue(st *State) (T, error)
	State(st *State) Snapshot
	Describe(st *State) string
	Kind() Kind
	Slot() Slot
	Hash() uint64
	Equal(other any) bool
	String() string
}

type inlinedValue[T any] struct {
	id    uint64
	codec *codec[T]
	slot  Slot
	cell  cell
}

func newInlinedValue[T any](c *codec[T], slot Slot) *inlinedValue[T] {
	return &inlinedValue[T]{id: newID(), codec: c, slot: slot, cell: newCell(c.kind, slot)}
}

func (p *inlinedValue[T]) Profile(st *State, v T) T {
	if from, to := p.cell.observe(st, p.codec.encode(v)); from != to {
		noteTransition(p.codec.kind, described{p, st}, from, to)
	}
	return v
}

func (p *inlinedValue[T]) Disable(st *State) {
	if from := p.cell.force(st, TagGeneric); from != TagGeneric {
		noteTransition(p.codec.kind, described{p, st}, from, TagGeneric)
	}
}

// Reset is meant for tests and for sites no compiled code depends on yet.
func (p *inlinedValue[T]) Reset(st *State) {
	if from := p.cell.force(st, TagUninitialized); from != TagUninitialized {
		noteTransition(p.codec.kind, described{p, st}, from, TagUninitialized)
	}
}

func (p *inlinedValue[T]) State(st *State) Snapshot { return p.cell.load(st) }

func (p *inlinedValue[T]) IsUninitialized(st *State) bool {
	return p.cell.load(st).Tag == TagUninitialized
}

func (p *inlinedValue[T]) IsGeneric(st *State) bool {
	return p.cell.load(st).Tag == TagGeneric
}

func (p *inlinedValue[T]) CachedValue(st *State) (result T, err error) {
	s := p.cell.load(st)
	if s.Tag != TagExact {
		return result, &NotApplicableError{Kind: p.codec.kind, Tag: s.Tag}
	}
	return p.codec.decode(s.Bits), nil
}

func (p *inlinedValue[T]) Describe(st *State) string {
	if st == nil {
		return p.String()
	}
	return describeSnapshot("Inlined"+p.codec.kind.ProfileName(), p.codec, p.cell.load(st))
}

func (p *inlinedValue[T]) Kind() Kind   { return p.codec.kind }
func (p *inlinedValue[T]) Slot() Slot   { return p.slot }
func (p *inlinedValue[T]) Hash() uint64 { return p.id }

func (p *inlinedValue[T]) Equal(other any) bool {
	q, ok := other.(*inlinedValue[T])
	return ok && q == p
}

func (p *inlinedValue[T]) String() string {
	return "Inlined" + p.codec.kind.ProfileName() + "(" + p.slot.String() + ")"
}

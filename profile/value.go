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

// ValueProfile remembers the single value seen at a program point, or
// that there was more than one.
//
//	v := p.Profile(x) // always returns x
//	if c, err := p.CachedValue(); err == nil {
//		// speculate on x == c, guard and deoptimize otherwise
//	}
type ValueProfile[T any] interface {
	Profile(v T) T
	Disable()
	Reset()
	IsUninitialized() bool
	IsGeneric() bool
	CachedValue() (T, error)
	State() Snapshot
	Kind() Kind
	Hash() uint64
	Equal(other any) bool
	String() string
}

// cachedValue owns its state: a private two word State driven by the same
// engine as inlined profiles.
type cachedValue[T any] struct {
	inlinedValue[T]
	buf [2]uint64
	st  State
}

func newCachedValue[T any](c *codec[T]) *cachedValue[T] {
	slot := Slot{Word: 0, Shift: 0, Payload: -1}
	if !c.kind.Packed() {
		slot.Payload = 1
	}
	p := &cachedValue[T]{inlinedValue: inlinedValue[T]{id: newID(), codec: c, slot: slot, cell: newCell(c.kind, slot)}}
	p.st.words = p.buf[:]
	return p
}

func (p *cachedValue[T]) Profile(v T) T {
	if from, to := p.cell.observe(&p.st, p.codec.encode(v)); from != to {
		noteTransition(p.codec.kind, p, from, to)
	}
	return v
}

func (p *cachedValue[T]) Disable() {
	if from := p.cell.force(&p.st, TagGeneric); from != TagGeneric {
		noteTransition(p.codec.kind, p, from, TagGeneric)
	}
}

func (p *cachedValue[T]) Reset() {
	if from := p.cell.force(&p.st, TagUninitialized); from != TagUninitialized {
		noteTransition(p.codec.kind, p, from, TagUninitialized)
	}
}

func (p *cachedValue[T]) State() Snapshot         { return p.cell.load(&p.st) }
func (p *cachedValue[T]) IsUninitialized() bool   { return p.inlinedValue.IsUninitialized(&p.st) }
func (p *cachedValue[T]) IsGeneric() bool         { return p.inlinedValue.IsGeneric(&p.st) }
func (p *cachedValue[T]) CachedValue() (T, error) { return p.inlinedValue.CachedValue(&p.st) }

func (p *cachedValue[T]) Equal(other any) bool {
	q, ok := other.(*cachedValue[T])
	return ok && q == p
}

func (p *cachedValue[T]) String() string {
	return describeSnapshot(p.codec.kind.ProfileName(), p.codec, p.cell.load(&p.st))
}

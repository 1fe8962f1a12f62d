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
	"runtime"
	"sync/atomic"
)

// cell is the resolved storage location of one profile. All access to
// the host words goes through atomic loads and CAS, so profiles never
// block and readers never see a half written tag/payload pair.
type cell struct {
	slot Slot
	mask uint64 // unshifted field mask inside the tag word
	wide bool
}

func newCell(kind Kind, slot Slot) cell {
	width := uint(kind.TagWidth())
	return cell{slot: slot, mask: uint64(1)<<width - 1, wide: !kind.Packed()}
}

func (c cell) field(w uint64) uint64 { return (w >> c.slot.Shift) & c.mask }

func (c cell) with(w uint64, f uint64) uint64 {
	return w&^(c.mask<<c.slot.Shift) | f<<c.slot.Shift
}

func (c cell) load(st *State) Snapshot {
	w := atomic.LoadUint64(&st.words[c.slot.Word])
	f := c.field(w)
	if !c.wide {
		return Snapshot{fieldTag(f), fieldPayload(f)}
	}
	switch tag := fieldTag(f); tag {
	case TagExact:
		// the payload is stored before the tag is published and stays
		// put until the next reset
		return Snapshot{TagExact, atomic.LoadUint64(&st.words[c.slot.Payload])}
	case tagClaimed:
		return Snapshot{Tag: TagUninitialized}
	default:
		return Snapshot{Tag: tag}
	}
}

// observe merges obs into the state and reports the transition this call
// caused. from == to means the call did not change the state.
func (c cell) observe(st *State, obs uint64) (from, to Tag) {
	if c.wide {
		return c.observeWide(st, obs)
	}
	p := &st.words[c.slot.Word]
	for {
		w := atomic.LoadUint64(p)
		cur := c.field(w)
		next := merge(cur, obs)
		if next == cur {
			return fieldTag(cur), fieldTag(cur)
		}
		if atomic.CompareAndSwapUint64(p, w, c.with(w, next)) {
			return fieldTag(cur), fieldTag(next)
		}
		// another profile sharing this word (or a racing observation) won
	}
}

// observeWide is the two word variant: a writer claims the tag, stores the
// payload and then publishes the exact state. A writer that meets a pending
// claim yields until it is published, so racing observations of one value
// settle on that value.
func (c cell) observeWide(st *State, obs uint64) (from, to Tag) {
	tp := &st.words[c.slot.Word]
	pp := &st.words[c.slot.Payload]
retry:
	for {
		w := atomic.LoadUint64(tp)
		switch fieldTag(c.field(w)) {
		case TagGeneric:
			return TagGeneric, TagGeneric
		case TagExact:
			if atomic.LoadUint64(pp) == obs {
				return TagExact, TagExact
			}
			if atomic.CompareAndSwapUint64(tp, w, c.with(w, uint64(TagGeneric))) {
				return TagExact, TagGeneric
			}
		case tagClaimed:
			runtime.Gosched()
		default:
			if !atomic.CompareAndSwapUint64(tp, w, c.with(w, uint64(tagClaimed))) {
				continue
			}
			atomic.StoreUint64(pp, obs)
			for {
				w = atomic.LoadUint64(tp)
				if fieldTag(c.field(w)) != tagClaimed {
					// reset or disabled while claimed
					continue retry
				}
				if atomic.CompareAndSwapUint64(tp, w, c.with(w, uint64(TagExact))) {
					break
				}
			}
			if atomic.LoadUint64(pp) == obs {
				return TagUninitialized, TagExact
			}
			// a claimer from before a reset stored its payload late
			for {
				w = atomic.LoadUint64(tp)
				if fieldTag(c.field(w)) != TagExact {
					return TagUninitialized, fieldTag(c.field(w))
				}
				if atomic.CompareAndSwapUint64(tp, w, c.with(w, uint64(TagGeneric))) {
					return TagUninitialized, TagGeneric
				}
			}
		}
	}
}

// force overwrites the state with an empty field of the given tag and
// returns the previous tag. A wide claim that is still pending when the tag
// is reset is released: the next observation claims afresh. The payload word
// is not guarded by the tag, so a claimer that stores after the reset can
// overwrite the new claimer's payload; the new claimer notices on publish and
// widens to generic. Reset is therefore only exact when no observation of the
// same site is in flight.
func (c cell) force(st *State, tag Tag) Tag {
	p := &st.words[c.slot.Word]
	for {
		w := atomic.LoadUint64(p)
		prev := fieldTag(c.field(w))
		if prev == tag && (c.wide || fieldPayload(c.field(w)) == 0) {
			return prev
		}
		if atomic.CompareAndSwapUint64(p, w, c.with(w, makeField(tag, 0))) {
			if prev == tagClaimed {
				prev = TagUninitialized
			}
			return prev
		}
	}
}

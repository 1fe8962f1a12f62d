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

import "fmt"

// Tag is the lattice position of a profile.
//
//	Uninitialized ⊑ Exact(v) ⊑ Generic
//
// A profile only ever moves to the right, except through an explicit Reset.
type Tag uint8

const (
	TagUninitialized Tag = iota
	TagExact
	TagGeneric
	tagClaimed // wide slots only: a writer owns the payload word
)

const tagBits = 2
const tagMask = uint64(1)<<tagBits - 1

func (t Tag) String() string {
	switch t {
	case TagUninitialized:
		return "uninitialized"
	case TagExact:
		return "exact"
	case TagGeneric:
		return "generic"
	case tagClaimed:
		return "claimed"
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Packed field layout (lowest bits first): 2 bit tag, then the payload.
func makeField(tag Tag, payload uint64) uint64 { return uint64(tag) | payload<<tagBits }
func fieldTag(f uint64) Tag                    { return Tag(f & tagMask) }
func fieldPayload(f uint64) uint64             { return f >> tagBits }

var genericField = makeField(TagGeneric, 0)

// merge applies one observation to a packed field. The result only depends
// on the set of observations seen so far, not on their order.
func merge(cur uint64, obs uint64) uint64 {
	switch fieldTag(cur) {
	case TagUninitialized:
		return makeField(TagExact, obs)
	case TagExact:
		if fieldPayload(cur) == obs {
			return cur
		}
		return genericField
	}
	return cur
}

// Snapshot is a consistent read of one profile's state.
type Snapshot struct {
	Tag  Tag
	Bits uint64 // raw observation, zero unless Tag == TagExact
}

func (s Snapshot) IsUninitialized() bool { return s.Tag == TagUninitialized }
func (s Snapshot) IsGeneric() bool       { return s.Tag == TagGeneric }

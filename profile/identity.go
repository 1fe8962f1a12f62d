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
	"fmt"
	"sync/atomic"
)

var nextProfileID atomic.Uint64

// newID hands out the identity used by Hash. Profiles compare by
// reference, never by their recorded state.
func newID() uint64 { return nextProfileID.Add(1) }

// uncachedHash is stable per kind and never collides with newID values
// in practice.
func uncachedHash(k Kind, inlined bool) uint64 {
	h := uint64(1)<<63 | uint64(k)
	if inlined {
		h |= 1 << 62
	}
	return h
}

// described renders an inlined profile together with its host state.
// Only built on transitions, so the hot path does not allocate.
type described struct {
	p  interface{ Describe(*State) string }
	st *State
}

func (d described) String() string { return d.p.Describe(d.st) }

func describeSnapshot[T any](name string, c *codec[T], s Snapshot) string {
	if s.Tag == TagExact {
		return fmt.Sprintf("%s(exact: %s)", name, c.format(c.decode(s.Bits)))
	}
	return fmt.Sprintf("%s(%s)", name, s.Tag)
}

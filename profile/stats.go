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

import "sync/atomic"

// transition counters, incremented only when a call changed a state
var (
	transitionsToExact   atomic.Int64
	transitionsToGeneric atomic.Int64
	transitionsToReset   atomic.Int64
)

// Stats counts state transitions across all profiles of the process.
// Generic counts every invalidation, including explicit Disable calls.
type Stats struct {
	Exact   int64
	Generic int64
	Resets  int64
}

func countTransition(to Tag) {
	switch to {
	case TagExact:
		transitionsToExact.Add(1)
	case TagGeneric:
		transitionsToGeneric.Add(1)
	case TagUninitialized:
		transitionsToReset.Add(1)
	}
}

func ReadStats() Stats {
	return Stats{
		Exact:   transitionsToExact.Load(),
		Generic: transitionsToGeneric.Load(),
		Resets:  transitionsToReset.Load(),
	}
}

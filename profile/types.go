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
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/launix-de/NonLockingReadMap"
)

// Runtime type identity. Exact type profiles store 32 bit type ids in
// their payload; ids are handed out once per reflect.Type and never reused.

type typeEntry struct {
	id uint32
	t  reflect.Type
}

func (e typeEntry) GetKey() uint32    { return e.id }
func (e typeEntry) ComputeSize() uint { return 16 + 8 + 16 }

var (
	typeIDs    sync.Map // reflect.Type -> uint32
	typesByID  = NonLockingReadMap.New[typeEntry, uint32]()
	nextTypeID atomic.Uint32
)

// TypeID returns the stable, nonzero identity token of t. The token can be
// used as a guard operand by generated code.
func TypeID(t reflect.Type) uint32 {
	if id, ok := typeIDs.Load(t); ok {
		return id.(uint32)
	}
	id := nextTypeID.Add(1)
	// publish the reverse mapping first, so every id a reader can obtain
	// is resolvable
	typesByID.Set(&typeEntry{id, t})
	if prev, loaded := typeIDs.LoadOrStore(t, id); loaded {
		return prev.(uint32) // lost the race; the orphaned id stays unused
	}
	return id
}

// TypeByID resolves a token returned by TypeID; nil for unknown ids.
func TypeByID(id uint32) reflect.Type {
	if e := typesByID.Get(id); e != nil {
		return e.t
	}
	return nil
}

// KnownTypes is the number of type ids handed out so far.
func KnownTypes() int { return len(typesByID.GetAll()) }

var typeCodec = codec[reflect.Type]{
	kind: KindExactType,
	encode: func(t reflect.Type) uint64 {
		return uint64(TypeID(t))
	},
	decode: func(b uint64) reflect.Type {
		return TypeByID(uint32(b))
	},
	format: func(t reflect.Type) string {
		if t == nil {
			return "<nil>"
		}
		return t.String()
	},
}

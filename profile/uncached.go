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

// Uncached profiles have nothing to mutate: they are permanently generic
// and shared by every caller. They are handed out when profiling is
// disabled or a site is not worth specializing.

type uncachedValue[T any] struct {
	codec *codec[T]
}

func (p *uncachedValue[T]) Profile(v T) T         { return v }
func (p *uncachedValue[T]) Disable()              {}
func (p *uncachedValue[T]) Reset()                {}
func (p *uncachedValue[T]) IsUninitialized() bool { return false }
func (p *uncachedValue[T]) IsGeneric() bool       { return true }
func (p *uncachedValue[T]) State() Snapshot       { return Snapshot{Tag: TagGeneric} }
func (p *uncachedValue[T]) Kind() Kind            { return p.codec.kind }
func (p *uncachedValue[T]) Hash() uint64          { return uncachedHash(p.codec.kind, false) }
func (p *uncachedValue[T]) String() string        { return p.codec.kind.ProfileName() + "(uncached)" }

func (p *uncachedValue[T]) Equal(other any) bool {
	q, ok := other.(*uncachedValue[T])
	return ok && q == p
}

func (p *uncachedValue[T]) CachedValue() (result T, err error) {
	return result, &NotApplicableError{Kind: p.codec.kind, Tag: TagGeneric, Uncached: true}
}

type uncachedInlined[T any] struct {
	codec *codec[T]
}

func (p *uncachedInlined[T]) Profile(st *State, v T) T       { return v }
func (p *uncachedInlined[T]) Disable(st *State)              {}
func (p *uncachedInlined[T]) Reset(st *State)                {}
func (p *uncachedInlined[T]) IsUninitialized(st *State) bool { return false }
func (p *uncachedInlined[T]) IsGeneric(st *State) bool       { return true }
func (p *uncachedInlined[T]) State(st *State) Snapshot       { return Snapshot{Tag: TagGeneric} }
func (p *uncachedInlined[T]) Describe(st *State) string      { return p.String() }
func (p *uncachedInlined[T]) Kind() Kind                     { return p.codec.kind }
func (p *uncachedInlined[T]) Slot() Slot                     { return Slot{Word: -1, Payload: -1} }
func (p *uncachedInlined[T]) Hash() uint64                   { return uncachedHash(p.codec.kind, true) }
func (p *uncachedInlined[T]) Equal(other any) bool {
	q, ok := other.(*uncachedInlined[T])
	return ok && q == p
}
func (p *uncachedInlined[T]) String() string {
	return "Inlined" + p.codec.kind.ProfileName() + "(uncached)"
}

func (p *uncachedInlined[T]) CachedValue(st *State) (result T, err error) {
	return result, &NotApplicableError{Kind: p.codec.kind, Tag: TagGeneric, Uncached: true}
}

type uncachedExactType struct {
	*uncachedValue[reflect.Type]
}

func (p uncachedExactType) Profile(v any) any { return v }

func (p uncachedExactType) CachedType() (reflect.Type, error) { return p.uncachedValue.CachedValue() }

func (p uncachedExactType) Equal(other any) bool {
	q, ok := other.(uncachedExactType)
	return ok && q.uncachedValue == p.uncachedValue
}

type uncachedInlinedExactType struct {
	*uncachedInlined[reflect.Type]
}

func (p uncachedInlinedExactType) Profile(st *State, v any) any { return v }

func (p uncachedInlinedExactType) CachedType(st *State) (reflect.Type, error) {
	return p.uncachedInlined.CachedValue(st)
}

func (p uncachedInlinedExactType) Equal(other any) bool {
	q, ok := other.(uncachedInlinedExactType)
	return ok && q.uncachedInlined == p.uncachedInlined
}

var (
	uncachedExactTypeProfile = uncachedExactType{&uncachedValue[reflect.Type]{&typeCodec}}
	uncachedBool             = &uncachedValue[bool]{&boolCodec}
	uncachedByte             = &uncachedValue[int8]{&byteCodec}
	uncachedShort            = &uncachedValue[int16]{&shortCodec}
	uncachedInt              = &uncachedValue[int32]{&intCodec}
	uncachedLong             = &uncachedValue[int64]{&longCodec}
	uncachedFloat            = &uncachedValue[float32]{&floatCodec}
	uncachedDouble           = &uncachedValue[float64]{&doubleCodec}

	uncachedInlinedExactTypeProfile = uncachedInlinedExactType{&uncachedInlined[reflect.Type]{&typeCodec}}
	uncachedInlinedBool             = &uncachedInlined[bool]{&boolCodec}
	uncachedInlinedByte             = &uncachedInlined[int8]{&byteCodec}
	uncachedInlinedShort            = &uncachedInlined[int16]{&shortCodec}
	uncachedInlinedInt              = &uncachedInlined[int32]{&intCodec}
	uncachedInlinedLong             = &uncachedInlined[int64]{&longCodec}
	uncachedInlinedFloat            = &uncachedInlined[float32]{&floatCodec}
	uncachedInlinedDouble           = &uncachedInlined[float64]{&doubleCodec}
)

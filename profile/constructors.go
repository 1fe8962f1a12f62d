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

// New* always return a profile with its own state. Create* return the
// uncached singleton instead when profiling is disabled in the settings.
// Inline* bind a profile to a slot of a host State and also fall back to
// the uncached singleton when profiling is disabled.

func NewExactTypeProfile() ExactTypeProfile   { return exactType{newCachedValue(&typeCodec)} }
func NewBoolProfile() ValueProfile[bool]      { return newCachedValue(&boolCodec) }
func NewByteProfile() ValueProfile[int8]      { return newCachedValue(&byteCodec) }
func NewShortProfile() ValueProfile[int16]    { return newCachedValue(&shortCodec) }
func NewIntProfile() ValueProfile[int32]      { return newCachedValue(&intCodec) }
func NewLongProfile() ValueProfile[int64]     { return newCachedValue(&longCodec) }
func NewFloatProfile() ValueProfile[float32]  { return newCachedValue(&floatCodec) }
func NewDoubleProfile() ValueProfile[float64] { return newCachedValue(&doubleCodec) }

func CreateExactTypeProfile() ExactTypeProfile {
	if !ProfilingEnabled() {
		return UncachedExactType()
	}
	return NewExactTypeProfile()
}

func create[T any](c *codec[T], uncached *uncachedValue[T]) ValueProfile[T] {
	if !ProfilingEnabled() {
		return uncached
	}
	return newCachedValue(c)
}

func CreateBoolProfile() ValueProfile[bool]      { return create(&boolCodec, uncachedBool) }
func CreateByteProfile() ValueProfile[int8]      { return create(&byteCodec, uncachedByte) }
func CreateShortProfile() ValueProfile[int16]    { return create(&shortCodec, uncachedShort) }
func CreateIntProfile() ValueProfile[int32]      { return create(&intCodec, uncachedInt) }
func CreateLongProfile() ValueProfile[int64]     { return create(&longCodec, uncachedLong) }
func CreateFloatProfile() ValueProfile[float32]  { return create(&floatCodec, uncachedFloat) }
func CreateDoubleProfile() ValueProfile[float64] { return create(&doubleCodec, uncachedDouble) }

func inline[T any](c *codec[T], slot Slot, uncached *uncachedInlined[T]) InlinedValueProfile[T] {
	if !ProfilingEnabled() {
		return uncached
	}
	return newInlinedValue(c, slot)
}

func InlineExactType(slot Slot) InlinedExactTypeProfile {
	if !ProfilingEnabled() {
		return UncachedInlinedExactType()
	}
	return inlinedExactType{newInlinedValue(&typeCodec, slot)}
}

func InlineBool(slot Slot) InlinedValueProfile[bool] {
	return inline(&boolCodec, slot, uncachedInlinedBool)
}

func InlineByte(slot Slot) InlinedValueProfile[int8] {
	return inline(&byteCodec, slot, uncachedInlinedByte)
}

func InlineShort(slot Slot) InlinedValueProfile[int16] {
	return inline(&shortCodec, slot, uncachedInlinedShort)
}

func InlineInt(slot Slot) InlinedValueProfile[int32] {
	return inline(&intCodec, slot, uncachedInlinedInt)
}

func InlineLong(slot Slot) InlinedValueProfile[int64] {
	return inline(&longCodec, slot, uncachedInlinedLong)
}

func InlineFloat(slot Slot) InlinedValueProfile[float32] {
	return inline(&floatCodec, slot, uncachedInlinedFloat)
}

func InlineDouble(slot Slot) InlinedValueProfile[float64] {
	return inline(&doubleCodec, slot, uncachedInlinedDouble)
}

// Uncached singletons, one per kind and storage strategy.

func UncachedExactType() ExactTypeProfile                 { return uncachedExactTypeProfile }
func UncachedBool() ValueProfile[bool]                    { return uncachedBool }
func UncachedByte() ValueProfile[int8]                    { return uncachedByte }
func UncachedShort() ValueProfile[int16]                  { return uncachedShort }
func UncachedInt() ValueProfile[int32]                    { return uncachedInt }
func UncachedLong() ValueProfile[int64]                   { return uncachedLong }
func UncachedFloat() ValueProfile[float32]                { return uncachedFloat }
func UncachedDouble() ValueProfile[float64]               { return uncachedDouble }
func UncachedInlinedExactType() InlinedExactTypeProfile   { return uncachedInlinedExactTypeProfile }
func UncachedInlinedBool() InlinedValueProfile[bool]      { return uncachedInlinedBool }
func UncachedInlinedByte() InlinedValueProfile[int8]      { return uncachedInlinedByte }
func UncachedInlinedShort() InlinedValueProfile[int16]    { return uncachedInlinedShort }
func UncachedInlinedInt() InlinedValueProfile[int32]      { return uncachedInlinedInt }
func UncachedInlinedLong() InlinedValueProfile[int64]     { return uncachedInlinedLong }
func UncachedInlinedFloat() InlinedValueProfile[float32]  { return uncachedInlinedFloat }
func UncachedInlinedDouble() InlinedValueProfile[float64] { return uncachedInlinedDouble }

// TypeOf is the runtime type identity query exact type profiles use.
func TypeOf(v any) reflect.Type { return reflect.TypeOf(v) }

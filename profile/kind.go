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
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Kind is the closed set of observation domains a profile can record.
type Kind uint8

const (
	KindExactType Kind = iota // runtime type identity
	KindBool
	KindByte   // int8
	KindShort  // int16
	KindInt    // int32
	KindLong   // int64
	KindFloat  // float32, compared by raw bits
	KindDouble // float64, compared by raw bits
	numKinds
)

var kindInfo = [numKinds]struct {
	name        string
	profileName string
	payloadBits uint8
}{
	KindExactType: {"exacttype", "ExactTypeProfile", 32},
	KindBool:      {"bool", "BooleanValueProfile", 1},
	KindByte:      {"byte", "ByteValueProfile", 8},
	KindShort:     {"short", "ShortValueProfile", 16},
	KindInt:       {"int", "IntValueProfile", 32},
	KindLong:      {"long", "LongValueProfile", 64},
	KindFloat:     {"float", "FloatValueProfile", 32},
	KindDouble:    {"double", "DoubleValueProfile", 64},
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	result := make([]Kind, numKinds)
	for i := range result {
		result[i] = Kind(i)
	}
	return result
}

func (k Kind) valid() bool { return k < numKinds }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindInfo[k].name
}

// ProfileName is the human readable class-like name used in descriptions.
func (k Kind) ProfileName() string {
	if !k.valid() {
		return "ValueProfile"
	}
	return kindInfo[k].profileName
}

// PayloadBits is the width of one observation of this kind.
func (k Kind) PayloadBits() uint8 { return kindInfo[k].payloadBits }

// Packed kinds keep tag and payload in one word, wide kinds need a
// separate payload word.
func (k Kind) Packed() bool { return tagBits+int(k.PayloadBits()) <= 64 }

// TagWidth is the number of bits the kind occupies in its tag word.
func (k Kind) TagWidth() uint8 {
	if k.Packed() {
		return tagBits + k.PayloadBits()
	}
	return tagBits
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range kindInfo {
		if info.name == s {
			return Kind(i), nil
		}
	}
	switch s {
	case "type", "class", "exactclass":
		return KindExactType, nil
	case "boolean":
		return KindBool, nil
	}
	return 0, fmt.Errorf("unknown profile kind %q", s)
}

// codec maps an observation domain onto payload bits.
type codec[T any] struct {
	kind   Kind
	encode func(T) uint64
	decode func(uint64) T
	format func(T) string
}

func signedCodec[T constraints.Signed](kind Kind) codec[T] {
	bits := uint(kind.PayloadBits())
	mask := uint64(1)<<bits - 1
	return codec[T]{
		kind: kind,
		encode: func(v T) uint64 {
			return uint64(int64(v)) & mask
		},
		decode: func(b uint64) T {
			// shift right preserving sign
			return T(int64(b<<(64-bits)) >> (64 - bits))
		},
		format: func(v T) string {
			return strconv.FormatInt(int64(v), 10)
		},
	}
}

var boolCodec = codec[bool]{
	kind: KindBool,
	encode: func(v bool) uint64 {
		if v {
			return 1
		}
		return 0
	},
	decode: func(b uint64) bool { return b != 0 },
	format: strconv.FormatBool,
}

var floatCodec = codec[float32]{
	kind:   KindFloat,
	encode: func(v float32) uint64 { return uint64(math.Float32bits(v)) },
	decode: func(b uint64) float32 { return math.Float32frombits(uint32(b)) },
	format: func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
}

var doubleCodec = codec[float64]{
	kind:   KindDouble,
	encode: math.Float64bits,
	decode: math.Float64frombits,
	format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
}

var (
	byteCodec  = signedCodec[int8](KindByte)
	shortCodec = signedCodec[int16](KindShort)
	intCodec   = signedCodec[int32](KindInt)
	longCodec  = signedCodec[int64](KindLong)
)

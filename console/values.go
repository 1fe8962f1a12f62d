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
package console

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("not a bool: %q", s)
	}
	return b, nil
}

// parseSigned accepts decimal, 0x hex, 0o octal and 0b binary literals
// in the range of T.
func parseSigned[T constraints.Signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		i, err := strconv.ParseInt(s, 0, bits)
		if err != nil {
			return 0, fmt.Errorf("not an int%d: %q", bits, s)
		}
		return T(i), nil
	}
}

func parseFloating[T constraints.Float](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, fmt.Errorf("not a float%d: %q", bits, s)
		}
		return T(f), nil
	}
}

var (
	parseByte   = parseSigned[int8](8)
	parseShort  = parseSigned[int16](16)
	parseInt    = parseSigned[int32](32)
	parseLong   = parseSigned[int64](64)
	parseFloat  = parseFloating[float32](32)
	parseDouble = parseFloating[float64](64)
)

// ParseLiteral reads a value for an exact type site. The literal syntax
// decides the runtime type:
//
//	"text"  string     42   int64     4.2, 1e3  float64
//	true    bool       nil  no value  'c'       rune
//	[a, b]  []any (flat, no nested lists or commas in strings)
func ParseLiteral(s string) (any, error) {
	switch {
	case s == "nil":
		return nil, nil
	case s == "true" || s == "false":
		return s == "true", nil
	case strings.HasPrefix(s, `"`):
		v, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("bad string literal %s", s)
		}
		return v, nil
	case strings.HasPrefix(s, "'"):
		v, err := strconv.Unquote(s)
		r := []rune(v)
		if err != nil || len(r) != 1 {
			return nil, fmt.Errorf("bad rune literal %s", s)
		}
		return r[0], nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		inner := strings.TrimSpace(s[1 : len(s)-1])
		result := []any{}
		if inner == "" {
			return result, nil
		}
		for _, item := range strings.Split(inner, ",") {
			v, err := ParseLiteral(strings.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			result = append(result, v)
		}
		return result, nil
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse literal %s", s)
}

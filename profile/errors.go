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
	"errors"
	"fmt"
)

// ErrNotApplicable is returned by cached value queries on profiles that
// are not in the exact state. Check IsGeneric/IsUninitialized first.
var ErrNotApplicable = errors.New("no cached value")

// NotApplicableError carries the state the query was made in.
type NotApplicableError struct {
	Kind     Kind
	Tag      Tag
	Uncached bool
}

func (e *NotApplicableError) Error() string {
	if e.Uncached {
		return fmt.Sprintf("%s: no cached value in uncached profile", e.Kind.ProfileName())
	}
	return fmt.Sprintf("%s: no cached value in %s state", e.Kind.ProfileName(), e.Tag)
}

func (e *NotApplicableError) Is(target error) bool { return target == ErrNotApplicable }

// LayoutError reports slot declarations that cannot share a host state.
type LayoutError struct {
	Kind   Kind
	Slot   Slot
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("cannot place %s profile at %v: %s", e.Kind, e.Slot, e.Reason)
}

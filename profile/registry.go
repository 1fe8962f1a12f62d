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
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/launix-de/NonLockingReadMap"
)

// Site is the untyped view tooling has on any owned profile.
type Site interface {
	Kind() Kind
	State() Snapshot
	Disable()
	Reset()
	IsUninitialized() bool
	IsGeneric() bool
	Hash() uint64
	String() string
}

// FormatBits renders a raw observation of the given kind.
func FormatBits(k Kind, bits uint64) string {
	switch k {
	case KindExactType:
		return typeCodec.format(typeCodec.decode(bits))
	case KindBool:
		return boolCodec.format(boolCodec.decode(bits))
	case KindByte:
		return byteCodec.format(byteCodec.decode(bits))
	case KindShort:
		return shortCodec.format(shortCodec.decode(bits))
	case KindInt:
		return intCodec.format(intCodec.decode(bits))
	case KindLong:
		return longCodec.format(longCodec.decode(bits))
	case KindFloat:
		return floatCodec.format(floatCodec.decode(bits))
	case KindDouble:
		return doubleCodec.format(doubleCodec.decode(bits))
	}
	return fmt.Sprintf("%#x", bits)
}

type siteEntry struct {
	name string
	site Site
}

func (e siteEntry) GetKey() string    { return e.name }
func (e siteEntry) ComputeSize() uint { return 16 + uint(len(e.name)) + 16 + 32 }

// Registry names profile sites for inspection tools. Lookups never block;
// registering is meant for setup code.
type Registry struct {
	id    uuid.UUID
	sites NonLockingReadMap.NonLockingReadMap[siteEntry, string]
}

func NewRegistry() *Registry {
	return &Registry{id: uuid.New(), sites: NonLockingReadMap.New[siteEntry, string]()}
}

func (r *Registry) ID() uuid.UUID { return r.id }

// Register binds name to s and returns the site previously bound, if any.
func (r *Registry) Register(name string, s Site) Site {
	prev := r.Lookup(name)
	r.sites.Set(&siteEntry{name, s})
	return prev
}

func (r *Registry) Lookup(name string) Site {
	if e := r.sites.Get(name); e != nil {
		return e.site
	}
	return nil
}

// Names lists all site names in ascending order.
func (r *Registry) Names() []string {
	all := r.sites.GetAll()
	result := make([]string, len(all))
	for i, e := range all {
		result[i] = e.name
	}
	return result
}

func (r *Registry) Len() int { return len(r.sites.GetAll()) }

type SiteSnapshot struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	State string `json:"state"`
	Value string `json:"value,omitempty"`
	Hash  uint64 `json:"hash"`
}

type RegistrySnapshot struct {
	ID       string         `json:"id"`
	Registry string         `json:"registry"`
	Taken    time.Time      `json:"taken"`
	Stats    Stats          `json:"stats"`
	Sites    []SiteSnapshot `json:"sites"`
}

// Snapshot reads every site once. Sites are read one after another, so
// the result is not a consistent cut across sites.
func (r *Registry) Snapshot() RegistrySnapshot {
	all := r.sites.GetAll()
	result := RegistrySnapshot{
		ID:       uuid.NewString(),
		Registry: r.id.String(),
		Taken:    time.Now().UTC(),
		Stats:    ReadStats(),
		Sites:    make([]SiteSnapshot, 0, len(all)),
	}
	for _, e := range all {
		s := e.site.State()
		ss := SiteSnapshot{Name: e.name, Kind: e.site.Kind().String(), State: s.Tag.String(), Hash: e.site.Hash()}
		if s.Tag == TagExact {
			ss.Value = FormatBits(e.site.Kind(), s.Bits)
		}
		result.Sites = append(result.Sites, ss)
	}
	return result
}

func (r *Registry) WriteSnapshot(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Snapshot()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Inlined is the part of every inlined profile that does not depend on
// the observation type.
type Inlined interface {
	Disable(st *State)
	Reset(st *State)
	State(st *State) Snapshot
	Describe(st *State) string
	Kind() Kind
	Hash() uint64
}

type boundSite struct {
	p  Inlined
	st *State
}

// Bind pairs an inlined profile with its host state, so it can be
// registered like an owned profile.
func Bind(p Inlined, st *State) Site { return boundSite{p, st} }

func (b boundSite) Kind() Kind            { return b.p.Kind() }
func (b boundSite) State() Snapshot       { return b.p.State(b.st) }
func (b boundSite) Disable()              { b.p.Disable(b.st) }
func (b boundSite) Reset()                { b.p.Reset(b.st) }
func (b boundSite) IsUninitialized() bool { return b.p.State(b.st).Tag == TagUninitialized }
func (b boundSite) IsGeneric() bool       { return b.p.State(b.st).Tag == TagGeneric }
func (b boundSite) Hash() uint64          { return b.p.Hash() }
func (b boundSite) String() string        { return b.p.Describe(b.st) }

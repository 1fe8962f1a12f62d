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

	"github.com/docker/go-units"
	"github.com/google/btree"
)

/*
Inlined profiles do not own their state. A host (e.g. an AST node or a
compiled call site) allocates one State for all of its profiles and every
profile remembers only where its bits live:

	word 0: |tag|payload|tag|payload|....|   packed kinds share words
	word 1: |tag|tag|.......................|   tag fields of wide kinds
	word 2: |payload (64 bit).............|   payload word of a wide kind

Overlapping slots corrupt each other silently. Slots handed out by one
Layout never overlap; callers that build slots by hand are responsible
for keeping them apart (Layout.Claim checks this at construction time).
*/

// Slot locates a profile's state inside a host State.
type Slot struct {
	Word    int   // word holding the tag field (and the payload of packed kinds)
	Shift   uint8 // bit offset of the tag field inside Word
	Payload int   // payload word of wide kinds, -1 for packed kinds
}

func (s Slot) String() string {
	if s.Payload < 0 {
		return fmt.Sprintf("word=%d shift=%d", s.Word, s.Shift)
	}
	return fmt.Sprintf("word=%d shift=%d payload=%d", s.Word, s.Shift, s.Payload)
}

// State is the host record inlined profiles borrow their storage from.
// Its words are only ever accessed atomically.
type State struct {
	words []uint64
}

// NewState allocates a host state with the given number of words.
func NewState(words int) *State {
	return &State{make([]uint64, words)}
}

func (s *State) Words() int { return len(s.words) }

func (s *State) SizeBytes() int64 { return int64(8 * len(s.words)) }

func (s *State) String() string {
	return fmt.Sprintf("State(%d words, %s)", len(s.words), units.BytesSize(float64(s.SizeBytes())))
}

// bitRange is a half open range of absolute bit positions in a State.
type bitRange struct {
	start, end uint64
}

// Layout reserves non-overlapping slots for the profiles of one host.
// It is a construction time helper and not safe for concurrent use.
type Layout struct {
	words   int
	slots   int
	next    uint64 // first-fit search starts here
	claimed *btree.BTreeG[bitRange]
}

func NewLayout() *Layout {
	return &Layout{
		claimed: btree.NewG[bitRange](8, func(a, b bitRange) bool {
			return a.start < b.start
		}),
	}
}

// Words is the number of words a State for this layout needs.
func (l *Layout) Words() int { return l.words }

func (l *Layout) NewState() *State { return NewState(l.words) }

func (l *Layout) String() string {
	return fmt.Sprintf("Layout(%d slots, %d words, %s)", l.slots, l.words, units.BytesSize(float64(8*l.words)))
}

// overlap returns the claimed range intersecting r, if any.
func (l *Layout) overlap(r bitRange) (conflict bitRange, found bool) {
	// claimed ranges are disjoint, so the one with the greatest start
	// below r.end is the only candidate
	l.claimed.DescendLessOrEqual(bitRange{start: r.end - 1}, func(c bitRange) bool {
		if c.end > r.start {
			conflict, found = c, true
		}
		return false
	})
	return
}

func (l *Layout) insert(r bitRange) {
	l.claimed.ReplaceOrInsert(r)
	if w := int((r.end + 63) / 64); w > l.words {
		l.words = w
	}
}

// fit finds the first free range of width bits that does not cross a word
// boundary.
func (l *Layout) fit(width uint64) uint64 {
	pos := l.next
	for {
		if pos%64+width > 64 {
			pos = (pos/64 + 1) * 64
		}
		c, found := l.overlap(bitRange{pos, pos + width})
		if !found {
			return pos
		}
		pos = c.end
	}
}

// place computes where Reserve would put a profile of kind and how many
// words the layout needs afterwards.
func (l *Layout) place(kind Kind) (slot Slot, words int) {
	width := uint64(kind.TagWidth())
	pos := l.fit(width)
	slot = Slot{Word: int(pos / 64), Shift: uint8(pos % 64), Payload: -1}
	words = max(l.words, int((pos+width+63)/64))
	if !kind.Packed() {
		slot.Payload = words
		words++
	}
	return slot, words
}

// WordsWith is the number of words the layout would need after reserving
// one more profile of kind. It does not change the layout.
func (l *Layout) WordsWith(kind Kind) int {
	_, words := l.place(kind)
	return words
}

// Reserve places a profile of the given kind and returns its slot.
func (l *Layout) Reserve(kind Kind) Slot {
	slot, _ := l.place(kind)
	for _, r := range slotRanges(kind, slot) {
		l.insert(r)
	}
	l.next = uint64(slot.Word)*64 + uint64(slot.Shift) + uint64(kind.TagWidth())
	l.slots++
	return slot
}

func slotRanges(kind Kind, slot Slot) []bitRange {
	start := uint64(slot.Word)*64 + uint64(slot.Shift)
	result := []bitRange{{start, start + uint64(kind.TagWidth())}}
	if !kind.Packed() {
		result = append(result, bitRange{uint64(slot.Payload) * 64, uint64(slot.Payload+1) * 64})
	}
	return result
}

// Claim registers a slot chosen by the caller. It fails if the slot is
// malformed for kind or overlaps a slot already in this layout.
func (l *Layout) Claim(kind Kind, slot Slot) error {
	if !kind.valid() {
		return &LayoutError{kind, slot, "unknown kind"}
	}
	if slot.Word < 0 || int(slot.Shift)+int(kind.TagWidth()) > 64 {
		return &LayoutError{kind, slot, "tag field does not fit into its word"}
	}
	if kind.Packed() && slot.Payload >= 0 {
		return &LayoutError{kind, slot, "packed kinds keep the payload next to the tag"}
	}
	if !kind.Packed() && (slot.Payload < 0 || slot.Payload == slot.Word) {
		return &LayoutError{kind, slot, "wide kinds need a separate payload word"}
	}
	ranges := slotRanges(kind, slot)
	for _, r := range ranges {
		if c, found := l.overlap(r); found {
			return &LayoutError{kind, slot, fmt.Sprintf("overlaps bits %d..%d", c.start, c.end)}
		}
	}
	for _, r := range ranges {
		l.insert(r)
	}
	l.slots++
	return nil
}

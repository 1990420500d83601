package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSlotNotFound is returned when a label is not part of the catalog
	ErrSlotNotFound = errors.New("domain: slot not found in catalog")

	// ErrInvalidDuration is returned for durations below one slot or unparseable duration labels
	ErrInvalidDuration = errors.New("domain: invalid duration")

	// ErrWindowOutOfRange is returned when start+duration runs past the last catalog slot
	ErrWindowOutOfRange = errors.New("domain: window runs past closing time")

	// ErrInvalidCatalog is returned for an empty catalog or blank/duplicate labels
	ErrInvalidCatalog = errors.New("domain: invalid slot catalog")
)

// Slot is a bookable start label of the studio day, e.g. "10:00" or "1:00".
// Slots are ordered by their catalog position, never by clock arithmetic.
type Slot string

func (s Slot) String() string {
	return string(s)
}

// SlotCatalog is the ordered, immutable list of slots of a studio day
type SlotCatalog struct {
	slots []Slot
	index map[Slot]int
}

// NewSlotCatalog builds a catalog from labels in opening order
func NewSlotCatalog(labels []string) (*SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrInvalidCatalog)
	}

	c := &SlotCatalog{
		slots: make([]Slot, 0, len(labels)),
		index: make(map[Slot]int, len(labels)),
	}

	for i, label := range labels {
		slot := Slot(strings.TrimSpace(label))
		if slot == "" {
			return nil, fmt.Errorf("%w: blank label at position %d", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[slot]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidCatalog, slot)
		}
		c.index[slot] = len(c.slots)
		c.slots = append(c.slots, slot)
	}

	return c, nil
}

// Slots returns a copy of the catalog in order
func (c *SlotCatalog) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Len returns the number of slots in a studio day
func (c *SlotCatalog) Len() int {
	return len(c.slots)
}

// At returns the slot at position i
func (c *SlotCatalog) At(i int) (Slot, bool) {
	if i < 0 || i >= len(c.slots) {
		return "", false
	}
	return c.slots[i], true
}

// IndexOf returns the position of a slot in the catalog
func (c *SlotCatalog) IndexOf(slot Slot) (int, error) {
	i, ok := c.index[Slot(strings.TrimSpace(string(slot)))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	return i, nil
}

// Window resolves the occupied window of start+duration; the window must fit before closing
func (c *SlotCatalog) Window(start Slot, duration int) (Window, error) {
	i, err := c.IndexOf(start)
	if err != nil {
		return Window{}, err
	}

	if duration < 1 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}

	if remaining := len(c.slots) - i; duration > remaining {
		return Window{}, fmt.Errorf("%w: %d slots from %q, only %d remain", ErrWindowOutOfRange, duration, start, remaining)
	}

	return Window{Start: i, Length: duration}, nil
}

// Remaining returns how many slots are left from position i to closing, i included
func (c *SlotCatalog) Remaining(i int) int {
	if i < 0 || i >= len(c.slots) {
		return 0
	}
	return len(c.slots) - i
}

// Labels returns the slots covered by a window
func (c *SlotCatalog) Labels(w Window) []Slot {
	start, end := w.Start, w.End()
	if start < 0 {
		start = 0
	}
	if end > len(c.slots) {
		end = len(c.slots)
	}
	if start >= end {
		return []Slot{}
	}

	out := make([]Slot, end-start)
	copy(out, c.slots[start:end])
	return out
}

// Window is a contiguous run of catalog positions [Start, Start+Length)
type Window struct {
	Start  int
	Length int
}

// End returns the exclusive end position
func (w Window) End() int {
	return w.Start + w.Length
}

// Intersects reports whether two windows share at least one slot
func (w Window) Intersects(other Window) bool {
	if w.Length <= 0 || other.Length <= 0 {
		return false
	}
	return w.Start < other.End() && other.Start < w.End()
}

// Contains reports whether position i is inside the window
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End()
}

package sparse

import (
	"iter"
	"slices"
)

// Space maps unsigned addresses to values of type T.
// Only addresses passed to Set are present; there is no default fill.
//
// The zero value is not usable, create spaces with New.
type Space[T any] struct {
	cells map[uint64]T

	// keys caches the present addresses in ascending order.
	// It is rebuilt lazily after a Set adds a new address.
	keys  []uint64
	dirty bool
}

// New returns an empty Space.
func New[T any]() *Space[T] {
	return &Space[T]{
		cells: make(map[uint64]T),
	}
}

// Get returns the value stored at addr and whether addr is present.
func (s *Space[T]) Get(addr uint64) (T, bool) {
	v, ok := s.cells[addr]
	return v, ok
}

// Set stores v at addr, replacing any previous value.
func (s *Space[T]) Set(addr uint64, v T) {
	if _, ok := s.cells[addr]; !ok {
		s.dirty = true
	}
	s.cells[addr] = v
}

// Contains reports whether addr has been written.
func (s *Space[T]) Contains(addr uint64) bool {
	_, ok := s.cells[addr]
	return ok
}

// Len returns the number of present addresses.
func (s *Space[T]) Len() int {
	return len(s.cells)
}

// All returns an iterator over the present addresses in ascending order.
// Each call starts a fresh iteration over the current contents.
func (s *Space[T]) All() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		for _, addr := range s.sortedKeys() {
			v, ok := s.cells[addr]
			if !ok {
				continue
			}
			if !yield(addr, v) {
				return
			}
		}
	}
}

// Addresses returns an iterator over the present addresses in ascending order.
func (s *Space[T]) Addresses() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for addr := range s.All() {
			if !yield(addr) {
				return
			}
		}
	}
}

// Bounds returns the lowest and highest present addresses.
// ok is false when the space is empty.
func (s *Space[T]) Bounds() (lo, hi uint64, ok bool) {
	keys := s.sortedKeys()
	if len(keys) == 0 {
		return 0, 0, false
	}
	return keys[0], keys[len(keys)-1], true
}

func (s *Space[T]) sortedKeys() []uint64 {
	if s.dirty {
		// A running iteration may still hold the old slice, so never
		// rebuild in place.
		keys := make([]uint64, 0, len(s.cells))
		for addr := range s.cells {
			keys = append(keys, addr)
		}
		slices.Sort(keys)
		s.keys = keys
		s.dirty = false
	}
	return s.keys
}

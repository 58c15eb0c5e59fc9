// Package setutil provides a set type for id collections.
package setutil

import "sort"

// UintSet is a set of uint values.
type UintSet struct {
	items map[uint]struct{}
}

func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

func (s *UintSet) Len() int {
	return len(s.items)
}

// Sorted returns the members in ascending order.
func (s *UintSet) Sorted() []uint {
	result := make([]uint, 0, len(s.items))
	for id := range s.items {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Intersect returns the members of s that are also in ids, ascending.
func (s *UintSet) Intersect(ids []uint) []uint {
	other := NewUintSet(ids...)
	result := make([]uint, 0)
	for _, id := range s.Sorted() {
		if other.Has(id) {
			result = append(result, id)
		}
	}
	return result
}

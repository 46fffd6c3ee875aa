package data

import (
	"cmp"
	"fmt"
	"slices"
)

// Sheet is an immutable lookup table keyed by row id.
// Values are returned by copy; callers cannot modify a loaded sheet.
type Sheet[K cmp.Ordered, R any] struct {
	rows map[K]R
	keys []K // по возрастанию
}

// NewSheet builds a sheet; duplicate keys are rejected.
func NewSheet[K cmp.Ordered, R any](rows []R, key func(R) K) (*Sheet[K, R], error) {
	s := &Sheet[K, R]{
		rows: make(map[K]R, len(rows)),
		keys: make([]K, 0, len(rows)),
	}
	for _, r := range rows {
		k := key(r)
		if _, dup := s.rows[k]; dup {
			return nil, fmt.Errorf("duplicate row id %v", k)
		}
		s.rows[k] = r
		s.keys = append(s.keys, k)
	}
	slices.Sort(s.keys)
	return s, nil
}

// MustSheet is NewSheet for literals known to be valid (tests, fixtures).
func MustSheet[K cmp.Ordered, R any](rows []R, key func(R) K) *Sheet[K, R] {
	s, err := NewSheet(rows, key)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the row with id k.
func (s *Sheet[K, R]) Get(k K) (R, bool) {
	if s == nil {
		var zero R
		return zero, false
	}
	r, ok := s.rows[k]
	return r, ok
}

// Len returns the number of rows.
func (s *Sheet[K, R]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the ids in ascending order.
func (s *Sheet[K, R]) Keys() []K {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Values returns the rows ordered by id.
func (s *Sheet[K, R]) Values() []R {
	if s == nil {
		return nil
	}
	out := make([]R, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.rows[k]
	}
	return out
}

package domain

import (
	"encoding/json"
	"slices"
)

// Set is an exact-match tag set. The zero value is an empty set.
type Set[T ~string] map[T]struct{}

func NewSet[T ~string](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array so cached snapshots are stable.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *Set[T]) UnmarshalJSON(b []byte) error {
	var vals []T
	if err := json.Unmarshal(b, &vals); err != nil {
		return err
	}
	*s = NewSet(vals...)
	return nil
}

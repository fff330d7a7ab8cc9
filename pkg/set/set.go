// Package set provides a small generic set type that remembers insertion order.
//
// Membership is decided by Go equality on comparable element types, as with
// map keys. Iteration follows the order in which elements were first added,
// which keeps algorithms that walk a set reproducible across runs even though
// the set itself is unordered.
//
// The zero value is not usable; create sets with [New] or [Of].
package set

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Set is an unordered collection of distinct elements with a stable
// iteration order.
type Set[E comparable] struct {
	index map[E]int
	elems []E
}

// New returns an empty set.
func New[E comparable]() Set[E] {
	return Set[E]{index: make(map[E]int)}
}

// Of returns a set holding the given elements. Duplicates collapse; the first
// occurrence determines the iteration position.
func Of[E comparable](elems ...E) Set[E] {
	s := Set[E]{index: make(map[E]int, len(elems)), elems: make([]E, 0, len(elems))}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts e and reports whether it was not already present.
func (s *Set[E]) Add(e E) bool {
	if s.index == nil {
		s.index = make(map[E]int)
	}
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.elems)
	s.elems = append(s.elems, e)
	return true
}

// Contains reports whether e is a member of s.
func (s Set[E]) Contains(e E) bool {
	_, ok := s.index[e]
	return ok
}

// Len returns the number of elements.
func (s Set[E]) Len() int { return len(s.elems) }

// IsEmpty reports whether s has no elements.
func (s Set[E]) IsEmpty() bool { return len(s.elems) == 0 }

// Clone returns an independent copy of s.
func (s Set[E]) Clone() Set[E] {
	c := Set[E]{index: make(map[E]int, len(s.elems)+1), elems: make([]E, len(s.elems), len(s.elems)+1)}
	copy(c.elems, s.elems)
	for i, e := range c.elems {
		c.index[e] = i
	}
	return c
}

// With returns a copy of s with e added. The receiver is not modified.
func (s Set[E]) With(e E) Set[E] {
	c := s.Clone()
	c.Add(e)
	return c
}

// Elements returns the members of s in insertion order.
// The returned slice is a copy.
func (s Set[E]) Elements() []E {
	return slices.Clone(s.elems)
}

// All returns an iterator over the members of s in insertion order.
func (s Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range s.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Equal reports whether s and o have the same members, regardless of order.
func (s Set[E]) Equal(o Set[E]) bool {
	return s.Len() == o.Len() && s.SubsetOf(o)
}

// SubsetOf reports whether every member of s is also a member of o.
func (s Set[E]) SubsetOf(o Set[E]) bool {
	if s.Len() > o.Len() {
		return false
	}
	for _, e := range s.elems {
		if !o.Contains(e) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and o share at least one element.
func (s Set[E]) Intersects(o Set[E]) bool {
	small, large := s, o
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for _, e := range small.elems {
		if large.Contains(e) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the members of all given sets, ordered by
// first occurrence.
func Union[E comparable](sets ...Set[E]) Set[E] {
	u := New[E]()
	for _, s := range sets {
		for _, e := range s.elems {
			u.Add(e)
		}
	}
	return u
}

// Sorted returns the members of s in ascending order.
func Sorted[E cmp.Ordered](s Set[E]) []E {
	out := s.Elements()
	slices.Sort(out)
	return out
}

// String renders s as "{a, b, c}" in insertion order.
func (s Set[E]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, e)
	}
	b.WriteByte('}')
	return b.String()
}

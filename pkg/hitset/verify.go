package hitset

import (
	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/set"
)

// MaxBruteForceElements caps the universe [BruteForce] will enumerate.
const MaxBruteForceElements = 20

// Universe returns the union of all sets in inst, in first-occurrence order.
func Universe[E comparable](inst Instance[E]) set.Set[E] {
	return set.Union(inst...)
}

// IsCover reports whether cover intersects every set of inst.
// An instance containing an empty set has no cover.
func IsCover[E comparable](inst Instance[E], cover set.Set[E]) bool {
	for _, s := range inst {
		if !s.Intersects(cover) {
			return false
		}
	}
	return true
}

// BruteForce returns a minimum cover of inst by trying every subset of its
// universe in order of increasing size. It is exponential in the universe
// size and refuses universes larger than [MaxBruteForceElements].
//
// It exists to cross-check [Solver] on small instances and shares no code with
// the branch-and-bound search.
func BruteForce[E comparable](inst Instance[E]) (set.Set[E], error) {
	for i, s := range inst {
		if s.IsEmpty() {
			return set.New[E](), errors.New(errors.ErrCodeUncoverable, "set %d is empty and cannot be hit", i)
		}
	}

	universe := Universe(inst).Elements()
	n := len(universe)
	if n > MaxBruteForceElements {
		return set.New[E](), errors.New(errors.ErrCodeInvalidInput,
			"brute force limited to %d elements, instance has %d", MaxBruteForceElements, n)
	}

	for size := 0; size <= n; size++ {
		if cover, ok := coverOfSize(inst, universe, size); ok {
			return cover, nil
		}
	}
	return set.New[E](), errors.New(errors.ErrCodeInternal, "no subset of the universe covers the instance")
}

// coverOfSize returns the first size-element subset of universe covering inst.
func coverOfSize[E comparable](inst Instance[E], universe []E, size int) (set.Set[E], bool) {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		c := set.New[E]()
		for _, i := range idx {
			c.Add(universe[i])
		}
		if IsCover(inst, c) {
			return c, true
		}

		// Advance to the next combination in lexicographic order.
		i := size - 1
		for i >= 0 && idx[i] == len(universe)-size+i {
			i--
		}
		if i < 0 {
			return set.Set[E]{}, false
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

package hitset

import (
	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/set"
)

// Preprocess returns the sets of inst the search has to hit.
//
// An empty set cannot be hit by any element, so unless opts.SkipEmpty is set
// Preprocess fails with an UNCOVERABLE_INPUT error naming the first empty set
// (0-indexed). With opts.Dedupe, sets equal to an earlier set are dropped; with
// opts.Reduce, sets strictly containing another set are dropped. Set order and
// the order of elements within each set are preserved. inst is not modified.
func Preprocess[E comparable](inst Instance[E], opts Options) (Instance[E], error) {
	out := make(Instance[E], 0, len(inst))
	for i, s := range inst {
		if s.IsEmpty() {
			if opts.SkipEmpty {
				continue
			}
			return nil, errors.New(errors.ErrCodeUncoverable, "set %d is empty and cannot be hit", i)
		}
		if opts.Dedupe && containsEqual(out, s) {
			continue
		}
		out = append(out, s)
	}

	if opts.Reduce {
		out = dropSupersets(out)
	}
	return out, nil
}

func containsEqual[E comparable](sets Instance[E], s set.Set[E]) bool {
	for _, o := range sets {
		if o.Equal(s) {
			return true
		}
	}
	return false
}

// dropSupersets removes every set that strictly contains another set.
func dropSupersets[E comparable](sets Instance[E]) Instance[E] {
	out := make(Instance[E], 0, len(sets))
	for i, s := range sets {
		dominated := false
		for j, o := range sets {
			if i != j && o.Len() < s.Len() && o.SubsetOf(s) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, s)
		}
	}
	return out
}

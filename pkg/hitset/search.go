package hitset

import (
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hitset/pkg/set"
)

// noBound stands for the infinite bound before any cover is known.
const noBound = math.MaxInt

// progressInterval is the number of explored nodes between Progress reports.
const progressInterval = 4096

// search holds the per-run state of one sequential branch-and-bound walk.
// It is not safe for concurrent use; parallel mode gives each goroutine its own.
type search[E comparable] struct {
	branching Branching
	progress  func(Stats)
	stats     *Stats

	// shared, when non-nil, is a bound shared with sibling searches.
	shared *atomic.Int64
}

// node explores the subtree rooted at (cover, remaining) and returns the best
// cover smaller than bound, or false if every branch was pruned.
// Neither cover nor remaining is modified.
func (s *search[E]) node(cover set.Set[E], remaining []set.Set[E], bound int) (set.Set[E], bool) {
	s.visit()
	bound = s.tighten(bound)
	if cover.Len() >= bound {
		s.stats.Pruned++
		return set.Set[E]{}, false
	}
	if len(remaining) == 0 {
		s.stats.Solutions++
		s.publish(cover.Len())
		return cover, true
	}

	hit, rest := s.pick(remaining)
	var (
		best  set.Set[E]
		found bool
	)
	for e := range hit.All() {
		candidate, ok := s.node(cover.With(e), uncovered(rest, e), bound)
		if ok && candidate.Len() < bound {
			best, found, bound = candidate, true, candidate.Len()
		}
	}
	return best, found
}

// pick returns the set to branch on and the remaining sets without it.
func (s *search[E]) pick(remaining []set.Set[E]) (set.Set[E], []set.Set[E]) {
	if s.branching != BranchSmallest {
		return remaining[0], remaining[1:]
	}
	at := 0
	for i, r := range remaining {
		if r.Len() < remaining[at].Len() {
			at = i
		}
	}
	rest := make([]set.Set[E], 0, len(remaining)-1)
	rest = append(rest, remaining[:at]...)
	rest = append(rest, remaining[at+1:]...)
	return remaining[at], rest
}

// uncovered returns the sets of rest that do not contain e, in order.
func uncovered[E comparable](rest []set.Set[E], e E) []set.Set[E] {
	out := make([]set.Set[E], 0, len(rest))
	for _, r := range rest {
		if !r.Contains(e) {
			out = append(out, r)
		}
	}
	return out
}

func (s *search[E]) visit() {
	s.stats.Explored++
	if s.progress != nil && s.stats.Explored%progressInterval == 0 {
		s.progress(*s.stats)
	}
}

// tighten lowers bound to the shared bound, if any.
func (s *search[E]) tighten(bound int) int {
	if s.shared == nil {
		return bound
	}
	return min(bound, int(s.shared.Load()))
}

// publish lowers the shared bound to size if size is strictly smaller.
func (s *search[E]) publish(size int) {
	if s.shared == nil {
		return
	}
	for {
		cur := s.shared.Load()
		if int64(size) >= cur || s.shared.CompareAndSwap(cur, int64(size)) {
			return
		}
	}
}

// searchParallel explores the branches of the root node concurrently.
// Each branch runs its own sequential search; they share only the bound.
func (s *Solver[E]) searchParallel(sets Instance[E], stats *Stats) (set.Set[E], bool, error) {
	stats.Explored++
	if len(sets) == 0 {
		stats.Solutions++
		return set.New[E](), true, nil
	}

	var shared atomic.Int64
	shared.Store(noBound)

	root := &search[E]{branching: s.opts.Branching, stats: stats}
	hit, rest := root.pick(sets)
	elems := hit.Elements()

	type branch struct {
		cover set.Set[E]
		found bool
		stats Stats
	}
	results := make([]branch, len(elems))

	var g errgroup.Group
	g.SetLimit(s.opts.Parallel)
	for i, e := range elems {
		g.Go(func() error {
			b := &results[i]
			sr := &search[E]{branching: s.opts.Branching, stats: &b.stats, shared: &shared}
			b.cover, b.found = sr.node(set.Of(e), uncovered(rest, e), noBound)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return set.Set[E]{}, false, err
	}

	var (
		best  set.Set[E]
		found bool
	)
	for _, b := range results {
		stats.Explored += b.stats.Explored
		stats.Pruned += b.stats.Pruned
		stats.Solutions += b.stats.Solutions
		if b.found && (!found || b.cover.Len() < best.Len()) {
			best, found = b.cover, true
		}
	}
	return best, found, nil
}

package hitset

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/set"
)

// Instance is an ordered collection of sets to be hit. The order only fixes
// iteration; the problem itself is order-independent.
type Instance[E comparable] []set.Set[E]

// Branching selects which uncovered set a search node branches on.
type Branching int

const (
	// BranchFirst branches on the first uncovered set in input order.
	BranchFirst Branching = iota
	// BranchSmallest branches on the smallest uncovered set, first on ties.
	BranchSmallest
)

var branchingNames = map[Branching]string{
	BranchFirst:    "first",
	BranchSmallest: "smallest",
}

// String returns the lowercase name of the strategy.
func (b Branching) String() string {
	if s, ok := branchingNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Branching(%d)", int(b))
}

// ParseBranching parses a strategy name as accepted on the command line.
func ParseBranching(s string) (Branching, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return BranchFirst, nil
	case "smallest":
		return BranchSmallest, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown branching strategy %q (want first or smallest)", s)
}

// Options configures a [Solver].
type Options struct {
	// Branching chooses the set each node branches on.
	Branching Branching

	// Dedupe drops sets equal to an earlier set before searching.
	Dedupe bool

	// Reduce drops every set that strictly contains another set. Any cover
	// of the smaller set also covers the larger one.
	Reduce bool

	// SkipEmpty silently drops empty sets instead of failing with
	// UNCOVERABLE_INPUT. An instance with an empty set then yields the cover
	// of its remaining sets.
	SkipEmpty bool

	// Parallel is the maximum number of goroutines exploring the root's
	// branches. Values <= 1 search sequentially.
	Parallel int

	// Progress, if set, receives running statistics during sequential search
	// and the final statistics once the search completes.
	Progress func(Stats)
}

// DefaultOptions returns the reference configuration: first-set branching,
// duplicate removal, sequential search.
func DefaultOptions() Options {
	return Options{Branching: BranchFirst, Dedupe: true, Parallel: 1}
}

// Validate reports invalid option values.
func (o Options) Validate() error {
	if _, ok := branchingNames[o.Branching]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown branching strategy %d", int(o.Branching))
	}
	if o.Parallel < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "parallel must be >= 0, got %d", o.Parallel)
	}
	return nil
}

// Stats summarizes one search.
type Stats struct {
	Sets      int // sets left after preprocessing
	Elements  int // distinct elements across those sets
	Explored  int // search nodes visited
	Pruned    int // nodes abandoned because |C| reached the bound
	Solutions int // complete covers reached
	Best      int // size of the returned cover, -1 if none
}

// Solver finds minimum hitting sets over elements of type E.
// A Solver holds no per-search state and may be reused.
type Solver[E comparable] struct {
	opts Options
}

// NewSolver creates a solver with the given options.
func NewSolver[E comparable](opts Options) *Solver[E] {
	return &Solver[E]{opts: opts}
}

// Options returns the solver's configuration.
func (s *Solver[E]) Options() Options {
	return s.opts
}

// Solve returns a minimum cover of inst using [DefaultOptions].
//
// It fails with an UNCOVERABLE_INPUT error if any set in inst is empty.
// The empty instance yields the empty cover.
func Solve[E comparable](inst Instance[E]) (set.Set[E], error) {
	return NewSolver[E](DefaultOptions()).Solve(inst)
}

// Solve returns a minimum cover of inst.
func (s *Solver[E]) Solve(inst Instance[E]) (set.Set[E], error) {
	cover, _, err := s.SolveStats(inst)
	return cover, err
}

// SolveStats returns a minimum cover of inst together with search statistics.
// On error the returned cover is empty and no partial result is reported.
func (s *Solver[E]) SolveStats(inst Instance[E]) (set.Set[E], Stats, error) {
	stats := Stats{Best: -1}
	if err := s.opts.Validate(); err != nil {
		return set.New[E](), stats, err
	}

	sets, err := Preprocess(inst, s.opts)
	if err != nil {
		return set.New[E](), stats, err
	}
	stats.Sets = len(sets)
	stats.Elements = Universe(sets).Len()

	var (
		cover set.Set[E]
		found bool
	)
	if s.opts.Parallel > 1 {
		cover, found, err = s.searchParallel(sets, &stats)
		if err != nil {
			return set.New[E](), stats, err
		}
	} else {
		sr := &search[E]{branching: s.opts.Branching, progress: s.opts.Progress, stats: &stats}
		cover, found = sr.node(set.New[E](), sets, noBound)
	}

	if !found {
		return set.New[E](), stats, errors.New(errors.ErrCodeInternal,
			"search found no cover for a well-formed instance of %d sets", len(sets))
	}
	stats.Best = cover.Len()
	if s.opts.Progress != nil {
		s.opts.Progress(stats)
	}
	return cover, stats, nil
}

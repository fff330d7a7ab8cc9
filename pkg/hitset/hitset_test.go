package hitset

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/set"
)

func inst(sets ...[]string) Instance[string] {
	out := make(Instance[string], len(sets))
	for i, s := range sets {
		out[i] = set.Of(s...)
	}
	return out
}

func TestSolveScenarios(t *testing.T) {
	tests := []struct {
		name     string
		inst     Instance[string]
		wantSize int
		oneOf    []set.Set[string]
	}{
		{
			name:     "one set",
			inst:     inst([]string{"a", "b"}),
			wantSize: 1,
			oneOf:    []set.Set[string]{set.Of("a"), set.Of("b")},
		},
		{
			name:     "two overlapping sets",
			inst:     inst([]string{"a", "b"}, []string{"b", "c"}),
			wantSize: 1,
			oneOf:    []set.Set[string]{set.Of("b")},
		},
		{
			name:     "disjoint sets",
			inst:     inst([]string{"a"}, []string{"b"}),
			wantSize: 2,
			oneOf:    []set.Set[string]{set.Of("a", "b")},
		},
		{
			name:     "full overlap",
			inst:     inst([]string{"a", "b", "c"}, []string{"a", "b", "c"}),
			wantSize: 1,
			oneOf:    []set.Set[string]{set.Of("a"), set.Of("b"), set.Of("c")},
		},
		{
			name:     "chain forcing three picks",
			inst:     inst([]string{"a", "b"}, []string{"c", "d"}, []string{"e", "f"}),
			wantSize: 3,
		},
		{
			name:     "empty instance",
			inst:     Instance[string]{},
			wantSize: 0,
			oneOf:    []set.Set[string]{set.New[string]()},
		},
		{
			name:     "nil instance",
			inst:     nil,
			wantSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cover, err := Solve(tt.inst)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if cover.Len() != tt.wantSize {
				t.Errorf("|cover| = %d, want %d (cover %v)", cover.Len(), tt.wantSize, cover)
			}
			if !IsCover(tt.inst, cover) {
				t.Errorf("cover %v does not hit every set", cover)
			}
			if len(tt.oneOf) == 0 {
				return
			}
			for _, want := range tt.oneOf {
				if cover.Equal(want) {
					return
				}
			}
			t.Errorf("cover %v not among expected %v", cover, tt.oneOf)
		})
	}
}

func TestSolveUncoverable(t *testing.T) {
	tests := []struct {
		name string
		inst Instance[string]
	}{
		{"empty after nonempty", inst([]string{"a"}, []string{})},
		{"only empty", inst([]string{})},
		{"empty first", inst([]string{}, []string{"a", "b"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cover, err := Solve(tt.inst)
			if !errors.Is(err, errors.ErrCodeUncoverable) {
				t.Fatalf("Solve() error = %v, want %s", err, errors.ErrCodeUncoverable)
			}
			if !cover.IsEmpty() {
				t.Errorf("Solve() returned cover %v alongside an error", cover)
			}
		})
	}
}

func TestSolveSkipEmptyLegacy(t *testing.T) {
	s := NewSolver[string](Options{Dedupe: true, SkipEmpty: true})

	cover, err := s.Solve(inst([]string{"a"}, []string{}))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !cover.Equal(set.Of("a")) {
		t.Errorf("cover = %v, want {a}", cover)
	}

	cover, err = s.Solve(inst([]string{}))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !cover.IsEmpty() {
		t.Errorf("cover = %v, want {}", cover)
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	in := inst([]string{"a", "b"}, []string{"b", "c"}, []string{"a", "b"})
	before := make([]string, len(in))
	for i, s := range in {
		before[i] = s.String()
	}

	for _, b := range []Branching{BranchFirst, BranchSmallest} {
		if _, err := NewSolver[string](Options{Branching: b, Reduce: true, Dedupe: true, Parallel: 2}).Solve(in); err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
	}

	if len(in) != len(before) {
		t.Fatalf("instance length changed: %d -> %d", len(before), len(in))
	}
	for i, s := range in {
		if s.String() != before[i] {
			t.Errorf("set %d changed: %s -> %s", i, before[i], s)
		}
	}
}

func TestSolveInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown branching", Options{Branching: Branching(7)}},
		{"negative parallel", Options{Parallel: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSolver[string](tt.opts).Solve(inst([]string{"a"}))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Solve() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestSolveStats(t *testing.T) {
	s := NewSolver[string](DefaultOptions())
	cover, stats, err := s.SolveStats(inst(
		[]string{"a", "b"}, []string{"b", "c"}, []string{"a", "b"}, []string{"d"},
	))
	if err != nil {
		t.Fatalf("SolveStats() error: %v", err)
	}
	if stats.Sets != 3 {
		t.Errorf("Sets = %d, want 3 after dedupe", stats.Sets)
	}
	if stats.Elements != 4 {
		t.Errorf("Elements = %d, want 4", stats.Elements)
	}
	if stats.Best != cover.Len() || stats.Best != 2 {
		t.Errorf("Best = %d, cover %v, want 2", stats.Best, cover)
	}
	if stats.Explored == 0 || stats.Solutions == 0 {
		t.Errorf("expected explored and solution counts, got %+v", stats)
	}
}

func TestSolveStatsOnError(t *testing.T) {
	_, stats, err := NewSolver[string](DefaultOptions()).SolveStats(inst([]string{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if stats.Best != -1 || stats.Explored != 0 {
		t.Errorf("stats = %+v, want no search", stats)
	}
}

func TestProgressReportsFinalStats(t *testing.T) {
	var calls []Stats
	opts := DefaultOptions()
	opts.Progress = func(s Stats) { calls = append(calls, s) }

	cover, err := NewSolver[string](opts).Solve(inst([]string{"a", "b"}, []string{"c"}))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if len(calls) == 0 {
		t.Fatal("Progress was never called")
	}
	last := calls[len(calls)-1]
	if last.Best != cover.Len() {
		t.Errorf("final Progress Best = %d, want %d", last.Best, cover.Len())
	}
}

func TestBoundPrunesAfterFirstCover(t *testing.T) {
	// Branching on {a, b, c}: a covers everything, so b and c can only be
	// completed with a second element and must be pruned.
	in := inst([]string{"a", "b", "c"}, []string{"a", "x"}, []string{"a", "y"})
	cover, stats, err := NewSolver[string](DefaultOptions()).SolveStats(in)
	if err != nil {
		t.Fatalf("SolveStats() error: %v", err)
	}
	if !cover.Equal(set.Of("a")) {
		t.Errorf("cover = %v, want {a}", cover)
	}
	if stats.Pruned == 0 {
		t.Errorf("expected pruned nodes, got %+v", stats)
	}
}

func TestTieKeepsFirstCover(t *testing.T) {
	// Both a and b alone are minimum covers; strict improvement keeps a.
	cover, err := Solve(inst([]string{"a", "b"}))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !cover.Equal(set.Of("a")) {
		t.Errorf("cover = %v, want the first minimum cover {a}", cover)
	}
}

func TestParseBranching(t *testing.T) {
	tests := []struct {
		in      string
		want    Branching
		wantErr bool
	}{
		{"", BranchFirst, false},
		{"first", BranchFirst, false},
		{"Smallest", BranchSmallest, false},
		{" smallest ", BranchSmallest, false},
		{"greedy", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBranching(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBranching(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBranching(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBranchingString(t *testing.T) {
	if BranchFirst.String() != "first" || BranchSmallest.String() != "smallest" {
		t.Errorf("unexpected names %q %q", BranchFirst, BranchSmallest)
	}
	if got := Branching(9).String(); got != "Branching(9)" {
		t.Errorf("unknown String() = %q", got)
	}
}

// randomInstance builds a small instance over elements 0..universe-1.
func randomInstance(r *rand.Rand, sets, universe, maxSize int) Instance[int] {
	out := make(Instance[int], sets)
	for i := range out {
		s := set.New[int]()
		n := 1 + r.IntN(maxSize)
		for range n {
			s.Add(r.IntN(universe))
		}
		out[i] = s
	}
	return out
}

func TestSolveMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	solvers := map[string]*Solver[int]{
		"first":     NewSolver[int](DefaultOptions()),
		"smallest":  NewSolver[int](Options{Branching: BranchSmallest, Dedupe: true}),
		"no dedupe": NewSolver[int](Options{}),
		"reduce":    NewSolver[int](Options{Dedupe: true, Reduce: true}),
		"parallel":  NewSolver[int](Options{Dedupe: true, Parallel: 4}),
	}

	for trial := 0; trial < 150; trial++ {
		in := randomInstance(r, 1+r.IntN(8), 2+r.IntN(9), 4)
		want, err := BruteForce(in)
		if err != nil {
			t.Fatalf("BruteForce() error: %v", err)
		}

		for name, s := range solvers {
			cover, err := s.Solve(in)
			if err != nil {
				t.Fatalf("trial %d %s: Solve() error: %v", trial, name, err)
			}
			if !IsCover(in, cover) {
				t.Fatalf("trial %d %s: %v does not cover %v", trial, name, cover, in)
			}
			if cover.Len() != want.Len() {
				t.Fatalf("trial %d %s: |cover| = %d, brute force %d (instance %v)",
					trial, name, cover.Len(), want.Len(), in)
			}
			if !cover.SubsetOf(Universe(in)) {
				t.Fatalf("trial %d %s: cover %v outside the universe", trial, name, cover)
			}
		}
	}
}

func TestOrderIndependence(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 50; trial++ {
		in := randomInstance(r, 2+r.IntN(6), 8, 4)
		base, err := Solve(in)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}

		shuffled := make(Instance[int], len(in))
		for i, p := range r.Perm(len(in)) {
			elems := in[p].Elements()
			r.Shuffle(len(elems), func(a, b int) { elems[a], elems[b] = elems[b], elems[a] })
			shuffled[i] = set.Of(elems...)
		}

		got, err := Solve(shuffled)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if got.Len() != base.Len() {
			t.Fatalf("trial %d: permuted |cover| = %d, original %d", trial, got.Len(), base.Len())
		}
	}
}

func TestDuplicateInvariance(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for trial := 0; trial < 50; trial++ {
		in := randomInstance(r, 1+r.IntN(6), 8, 3)
		base, err := Solve(in)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}

		dup := append(Instance[int]{}, in...)
		dup = append(dup, in[r.IntN(len(in))].Clone())

		for _, opts := range []Options{DefaultOptions(), {}} {
			got, err := NewSolver[int](opts).Solve(dup)
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if got.Len() != base.Len() {
				t.Fatalf("trial %d: duplicated |cover| = %d, original %d", trial, got.Len(), base.Len())
			}
		}
	}
}

func TestMonotoneUnderEnlargement(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for trial := 0; trial < 50; trial++ {
		in := randomInstance(r, 1+r.IntN(6), 8, 3)
		base, err := Solve(in)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}

		enlarged := append(Instance[int]{}, in...)
		i := r.IntN(len(enlarged))
		enlarged[i] = enlarged[i].With(r.IntN(12))

		got, err := Solve(enlarged)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if got.Len() > base.Len() {
			t.Fatalf("trial %d: enlarging a set raised |cover| from %d to %d", trial, base.Len(), got.Len())
		}
	}
}

func TestParallelWithMoreBranchesThanWorkers(t *testing.T) {
	in := inst(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]string{"f", "g"},
		[]string{"g", "h"},
		[]string{"a", "h"},
	)
	cover, stats, err := NewSolver[string](Options{Dedupe: true, Parallel: 2}).SolveStats(in)
	if err != nil {
		t.Fatalf("SolveStats() error: %v", err)
	}
	if cover.Len() != 2 || !IsCover(in, cover) {
		t.Errorf("cover = %v, want a cover of size 2", cover)
	}
	if stats.Best != 2 {
		t.Errorf("Best = %d, want 2", stats.Best)
	}
}

func TestParallelEmptyInstance(t *testing.T) {
	cover, err := NewSolver[string](Options{Parallel: 4}).Solve(nil)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !cover.IsEmpty() {
		t.Errorf("cover = %v, want {}", cover)
	}
}

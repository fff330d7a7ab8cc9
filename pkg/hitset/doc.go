// Package hitset computes minimum hitting sets by exact branch-and-bound search.
//
// # The Hitting Set Problem
//
// Given an ordered collection of nonempty sets, a hitting set (or transversal)
// is a set of elements that intersects every one of them. Finding one of
// minimum cardinality is NP-hard; this package is a reference solver for
// small instances and never approximates.
//
// # Algorithm
//
// [Solver] first preprocesses the instance: empty sets make the instance
// uncoverable and are rejected with an UNCOVERABLE_INPUT error, duplicate sets
// are dropped, and (optionally) strict supersets of other sets are dropped.
//
// The search then maintains a partial cover C, the sets R it does not yet
// hit, and the size B of the best complete cover found so far:
//
//  1. If |C| >= B the node is pruned.
//  2. If R is empty, C is a complete cover.
//  3. Otherwise pick a set H from R. Every cover must contain some element
//     of H, so branch on each e in H: add e to C, drop every set containing
//     e from R, and recurse with the tightest bound known at that point.
//
// A child's cover replaces the incumbent only if it is strictly smaller, so
// ties keep the first cover found. Each node derives fresh copies of C and R
// for its children; parents are never mutated.
//
// # Branching
//
// [BranchFirst] branches on the first uncovered set in input order.
// [BranchSmallest] branches on the smallest uncovered set, which narrows the
// tree without affecting the result's cardinality.
//
// # Parallel Search
//
// With [Options].Parallel > 1 the branches of the root node are explored
// concurrently and share an atomic bound. The returned cover is still of
// minimum cardinality, though which minimum cover is returned may vary.
//
// # Usage
//
//	cover, err := hitset.Solve(hitset.Instance[string]{
//	    set.Of("a", "b"),
//	    set.Of("b", "c"),
//	})
//	// cover == {b}
//
// With options and statistics:
//
//	s := hitset.NewSolver[string](hitset.Options{Branching: hitset.BranchSmallest, Dedupe: true})
//	cover, stats, err := s.SolveStats(inst)
//	fmt.Printf("explored %d nodes, pruned %d\n", stats.Explored, stats.Pruned)
package hitset

// Package runner solves hitting set instances with caching, logging and
// observability hooks around the core solver.
//
// The CLI and any future service share one [Runner] so cache keys, log
// fields and hook calls stay consistent between them.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hitset/pkg/cache"
	"github.com/matzehuels/hitset/pkg/hitset"
	hio "github.com/matzehuels/hitset/pkg/io"
	"github.com/matzehuels/hitset/pkg/observability"
	"github.com/matzehuels/hitset/pkg/set"
)

// keyType labels solution cache events passed to observability hooks.
const keyType = "solution"

// Options configures a single Solve call.
type Options struct {
	Solver  hitset.Options
	Refresh bool          // skip the cache lookup but still store the result
	TTL     time.Duration // cache entry lifetime; zero means cache.DefaultTTL
}

// Result is the outcome of Runner.Solve.
type Result struct {
	Cover    set.Set[string]
	Stats    hitset.Stats // on a cache hit, Pruned and Solutions are zero
	Hash     string       // canonical instance hash
	CacheHit bool
	Duration time.Duration
}

// Runner wraps the solver with a cache.
//
// A Runner keeps no per-solve state. Multiple goroutines can safely use the
// same Runner as long as its Cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// New creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func New(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// entry is the cached form of a solution.
type entry struct {
	Cover    []string `json:"cover"`
	Explored int      `json:"explored"`
}

// Solve returns a minimum cover of inst, consulting the cache first.
// Cache failures are logged and never fail the solve.
func (r *Runner) Solve(ctx context.Context, inst hitset.Instance[string], opts Options) (*Result, error) {
	if err := opts.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := hio.CanonicalHash(inst)
	if err != nil {
		return nil, fmt.Errorf("hash instance: %w", err)
	}
	key := r.Keyer.SolutionKey(hash, keyOpts(opts.Solver))
	logger := r.Logger.With("hash", hash[:12])

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key, inst, opts.Solver, logger); ok {
			res.Hash = hash
			logger.Info("solved", "size", res.Cover.Len(), "cached", true)
			return res, nil
		}
	}

	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, len(inst), hitset.Universe(inst).Len())

	start := time.Now()
	cover, stats, err := hitset.NewSolver[string](opts.Solver).SolveStats(inst)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnSolveComplete(ctx, -1, int64(stats.Explored), elapsed, err)
		return nil, err
	}
	hooks.OnSolveComplete(ctx, cover.Len(), int64(stats.Explored), elapsed, nil)

	logger.Info("solved",
		"sets", stats.Sets,
		"elements", stats.Elements,
		"size", cover.Len(),
		"explored", stats.Explored,
		"pruned", stats.Pruned,
		"duration", elapsed,
		"cached", false)

	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	r.store(ctx, key, entry{Cover: cover.Elements(), Explored: stats.Explored}, ttl, logger)

	return &Result{Cover: cover, Stats: stats, Hash: hash, Duration: elapsed}, nil
}

// cached returns the cached solution for key if it is present and still
// covers the preprocessed form of inst.
func (r *Runner) cached(ctx context.Context, key string, inst hitset.Instance[string], opts hitset.Options, logger *log.Logger) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		logger.Debug("discarding unreadable cache entry", "err", err)
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	sets, err := hitset.Preprocess(inst, opts)
	if err != nil {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	cover := set.Of(e.Cover...)
	if !hitset.IsCover(sets, cover) {
		logger.Debug("discarding cache entry that does not cover the instance")
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}

	hooks.OnCacheHit(ctx, keyType)
	return &Result{
		Cover: cover,
		Stats: hitset.Stats{
			Sets:     len(sets),
			Elements: hitset.Universe(sets).Len(),
			Explored: e.Explored,
			Best:     cover.Len(),
		},
		CacheHit: true,
	}, true
}

func (r *Runner) store(ctx context.Context, key string, e entry, ttl time.Duration, logger *log.Logger) {
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func keyOpts(o hitset.Options) cache.SolutionKeyOpts {
	return cache.SolutionKeyOpts{
		Branching: o.Branching.String(),
		Dedupe:    o.Dedupe,
		Reduce:    o.Reduce,
		SkipEmpty: o.SkipEmpty,
	}
}

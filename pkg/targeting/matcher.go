package targeting

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// defaultAcceptWhenUnfiltered is the decision applied to a non-excluded path
// when the matcher holds no inclusion and no advanced patterns: such a
// matcher was configured purely by exclusion, so everything it does not
// reject is accepted.
const defaultAcceptWhenUnfiltered = true

// Option configures a PathMatcher at construction.
type Option func(*matcherOptions)

type matcherOptions struct {
	logger      *slog.Logger
	concurrency int
}

// WithLogger sets the logger used for construction-time diagnostics. Queries
// never log. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *matcherOptions) { o.logger = logger }
}

// WithConcurrency bounds the number of paths a batch query evaluates at
// once. Values <= 0 select runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *matcherOptions) { o.concurrency = n }
}

// PathMatcher is an immutable decision function over a classified pattern
// set. Classification, glob compilation and advanced-decision construction
// happen once in New; a constructed matcher holds no mutable state and is
// safe for concurrent use.
type PathMatcher struct {
	inclusion    GlobPredicate
	exclusion    GlobPredicate
	advanced     []PredicateFunc
	hasInclusion bool
	hasExclusion bool
	concurrency  int
}

// New builds a PathMatcher from a pattern list. It fails when a glob pattern
// does not validate (wrapping ErrBadPattern) or when an advanced pattern
// carries a nil matcher (wrapping ErrNilPredicate), including inside nested
// base-pattern lists.
func New(patterns []Pattern, opts ...Option) (*PathMatcher, error) {
	o := matcherOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(99)}))
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.NumCPU()
	}

	cp := Classify(patterns)
	m, err := newMatcher(cp, o)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("target patterns compiled",
		slog.Int("inclusion", len(cp.Inclusion)),
		slog.Int("exclusion", len(cp.Exclusion)),
		slog.Int("advanced", len(cp.Advanced)))
	return m, nil
}

// newMatcher is the recursive core shared by New and buildAdvanced.
func newMatcher(cp ClassifiedPatterns, o matcherOptions) (*PathMatcher, error) {
	inclusion, err := CompileGlobs(cp.Inclusion)
	if err != nil {
		return nil, err
	}
	exclusion, err := CompileGlobs(cp.Exclusion)
	if err != nil {
		return nil, err
	}

	advanced := make([]PredicateFunc, 0, len(cp.Advanced))
	for _, adv := range cp.Advanced {
		decide, err := buildAdvanced(adv, o)
		if err != nil {
			return nil, err
		}
		advanced = append(advanced, decide)
	}

	return &PathMatcher{
		inclusion:    inclusion,
		exclusion:    exclusion,
		advanced:     advanced,
		hasInclusion: len(cp.Inclusion) > 0,
		hasExclusion: len(cp.Exclusion) > 0,
		concurrency:  o.concurrency,
	}, nil
}

// buildAdvanced turns one advanced pattern into a decision function: the
// recursively-built base-pattern decision ANDed with the caller predicate.
// The predicate is not invoked when the base decision already rejected the
// path.
func buildAdvanced(adv Advanced, o matcherOptions) (PredicateFunc, error) {
	if adv.Matcher == nil {
		return nil, ErrNilPredicate
	}
	base, err := newMatcher(Classify(adv.BasePatterns), o)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, path string) (bool, error) {
		ok, err := base.matches(ctx, path)
		if err != nil || !ok {
			return false, err
		}
		return adv.Matcher(ctx, path)
	}, nil
}

// PathMatchesPatterns reports whether a single path is selected by the
// pattern set. The path is separator-normalized before evaluation. Exclusion
// dominates: a path matching any exclusion pattern is rejected regardless of
// inclusion or advanced results. An advanced-predicate failure propagates
// unchanged in meaning, wrapped with the path for context.
func (m *PathMatcher) PathMatchesPatterns(ctx context.Context, path string) (bool, error) {
	return m.matches(ctx, NormalizePath(path))
}

// matches evaluates the composed rule over an already-normalized path:
//
//	(no exclusions OR NOT exclusion(path))
//	AND (no inclusions and no advanced
//	     OR inclusion(path)
//	     OR any advanced decision over path)
func (m *PathMatcher) matches(ctx context.Context, path string) (bool, error) {
	if m.hasExclusion && m.exclusion(path) {
		return false, nil
	}
	if !m.hasInclusion && len(m.advanced) == 0 {
		return defaultAcceptWhenUnfiltered, nil
	}
	if m.hasInclusion && m.inclusion(path) {
		return true, nil
	}
	return m.anyAdvanced(ctx, path)
}

// anyAdvanced ORs the advanced decisions for one path. All decisions are
// issued as independent goroutines and jointly awaited so slow I/O-bound
// predicates do not serialize; the first true result cancels the rest. A
// predicate failure fails the evaluation unless a true result already won
// the race.
func (m *PathMatcher) anyAdvanced(ctx context.Context, path string) (bool, error) {
	switch len(m.advanced) {
	case 0:
		return false, nil
	case 1:
		ok, err := m.advanced[0](ctx, path)
		if err != nil {
			return false, fmt.Errorf("advanced match %q: %w", path, err)
		}
		return ok, nil
	}

	evalCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hit atomic.Bool
	g, gctx := errgroup.WithContext(evalCtx)
	for _, decide := range m.advanced {
		decide := decide
		g.Go(func() error {
			ok, err := decide(gctx, path)
			if err != nil {
				return err
			}
			if ok {
				hit.Store(true)
				cancel()
			}
			return nil
		})
	}
	err := g.Wait()
	if hit.Load() {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("advanced match %q: %w", path, err)
	}
	return false, nil
}

// FilterPathsByPatterns evaluates every path independently and returns the
// subsequence of the original input strings whose normalized form satisfied
// the decision function, preserving input order. Evaluations scatter across
// goroutines bounded by the matcher's concurrency and are jointly awaited;
// one failing evaluation fails the whole batch. Calling it twice with the
// same input yields identical results, the matcher mutates no state.
func (m *PathMatcher) FilterPathsByPatterns(ctx context.Context, paths []string) ([]string, error) {
	selected := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ok, err := m.matches(gctx, NormalizePath(path))
			if err != nil {
				return err
			}
			selected[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(paths))
	for i, path := range paths {
		if selected[i] {
			out = append(out, path)
		}
	}
	return out, nil
}

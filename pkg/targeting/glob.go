package targeting

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobPredicate is a compiled, synchronous, side-effect-free test over one
// normalized path.
type GlobPredicate func(path string) bool

// CompileGlobs compiles a set of separator-normalized glob patterns into one
// predicate with OR semantics: the result reports true when the path matches
// at least one pattern, false when the set is empty or none match. Every
// pattern is validated up front; a syntactically invalid pattern fails the
// compilation with an error wrapping ErrBadPattern.
func CompileGlobs(patterns []string) (GlobPredicate, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, p, doublestar.ErrBadPattern)
		}
	}
	compiled := slices.Clone(patterns)
	return func(path string) bool {
		for _, p := range compiled {
			if doublestar.MatchUnvalidated(p, path) {
				return true
			}
		}
		return false
	}, nil
}

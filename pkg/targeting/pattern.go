package targeting

import (
	"context"
	"strings"
)

// NegationMarker prefixes a simple pattern to turn it into an exclusion.
const NegationMarker = "!"

// PredicateFunc is a caller-supplied asynchronous path test. Implementations
// may perform I/O (reading file content, stat calls) and must honor context
// cancellation. A returned error means the match result is indeterminate and
// propagates out of the enclosing query; it is never converted into false.
type PredicateFunc func(ctx context.Context, path string) (bool, error)

// Pattern is one element of a target pattern list: either a Simple glob
// string or an Advanced pattern. The two implementations in this package are
// the only ones.
type Pattern interface {
	isPattern()
}

// Simple is a glob pattern string. A leading NegationMarker makes it an
// exclusion pattern; the marker is stripped during classification.
type Simple string

func (Simple) isPattern() {}

// Advanced couples a nested base-pattern list with a custom predicate. A path
// satisfies an Advanced pattern when it satisfies the base patterns (resolved
// recursively through the same engine) AND the predicate returns true.
type Advanced struct {
	// BasePatterns is a full pattern list, classified recursively when the
	// advanced decision is built.
	BasePatterns []Pattern
	// Matcher is the custom predicate. Must be non-nil.
	Matcher PredicateFunc
}

func (Advanced) isPattern() {}

// FromStrings converts raw glob strings into a Pattern list.
func FromStrings(patterns []string) []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = Simple(p)
	}
	return out
}

// ClassifiedPatterns holds the three buckets a pattern list partitions into.
// Every input pattern lands in exactly one bucket. Matching semantics are
// order-independent within each bucket.
type ClassifiedPatterns struct {
	Inclusion []string
	Exclusion []string
	Advanced  []Advanced
}

// Classify partitions patterns into inclusion, exclusion and advanced
// buckets. Simple strings are separator-normalized; exclusion strings are
// stored with the negation marker stripped, so the exclusion bucket compiles
// into one OR predicate whose result the decision function negates
// (¬(p₁ ∨ p₂ ∨ …) = ¬p₁ ∧ ¬p₂ ∧ …). Advanced patterns pass through
// unchanged. Classify is pure; an empty input yields all-empty buckets.
func Classify(patterns []Pattern) ClassifiedPatterns {
	var cp ClassifiedPatterns
	for _, pattern := range patterns {
		switch p := pattern.(type) {
		case Simple:
			s := NormalizePath(string(p))
			if rest, negated := strings.CutPrefix(s, NegationMarker); negated {
				cp.Exclusion = append(cp.Exclusion, rest)
			} else {
				cp.Inclusion = append(cp.Inclusion, s)
			}
		case Advanced:
			cp.Advanced = append(cp.Advanced, p)
		}
	}
	return cp
}

// Package targeting decides which filesystem paths a scan should process.
//
// A PathMatcher is built once from a declarative pattern list and is then
// safe for any number of concurrent queries. Three pattern kinds compose
// into one decision function:
//
//   - inclusion globs, OR-combined: matching any of them grants eligibility;
//   - exclusion globs (written with a leading "!"), OR-combined among
//     themselves and then negated: matching any of them revokes eligibility
//     outright;
//   - advanced patterns, which pair a nested pattern list with a
//     caller-supplied predicate that may perform I/O, AND-combined.
//
// Exclusion dominates. A matcher configured with only exclusion patterns
// accepts every path the exclusions do not reject.
//
// Glob compilation is delegated to github.com/bmatcuk/doublestar/v4. All
// paths and patterns are separator-normalized before any matching happens;
// see NormalizePath.
package targeting

package targeting

import "errors"

var (
	// ErrBadPattern indicates that a glob pattern failed validation during
	// matcher construction. The matcher is unusable; the wrapped error names
	// the offending pattern. Check with errors.Is.
	ErrBadPattern = errors.New("invalid target pattern")

	// ErrNilPredicate indicates that an advanced pattern was supplied without
	// a matcher function. This is a construction-time configuration error.
	ErrNilPredicate = errors.New("advanced pattern has nil matcher")
)

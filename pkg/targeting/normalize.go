package targeting

import "strings"

// NormalizePath converts OS-specific path separators to the canonical forward
// slash. Every path and pattern entering the matcher passes through here;
// un-normalized inputs would silently fail to match. No other canonicalization
// (cleaning, case folding, encoding) is performed.
func NormalizePath(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	return strings.ReplaceAll(raw, `\`, `/`)
}

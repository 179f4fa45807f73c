// Package predicates provides ready-made advanced matchers for common
// content- and metadata-based targeting rules. All predicates honor context
// cancellation before touching the filesystem and propagate I/O failures
// unchanged in meaning.
package predicates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/marsson/sfdx-scanner/pkg/targeting"
)

// Language returns a predicate that reports true when go-enry detects the
// file's language as one of the given identifiers. Identifiers are compared
// case-insensitively ("apex" matches enry's "Apex"). Detection reads the file
// content, so this predicate is I/O-bound.
func Language(languages ...string) targeting.PredicateFunc {
	wanted := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		wanted[strings.ToLower(strings.TrimSpace(lang))] = struct{}{}
	}
	return func(ctx context.Context, path string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read %s for language detection: %w", path, err)
		}
		detected := enry.GetLanguage(filepath.Base(path), content)
		_, ok := wanted[strings.ToLower(detected)]
		return ok, nil
	}
}

// ContentContains returns a predicate that reports true when the file's
// content contains substr.
func ContentContains(substr string) targeting.PredicateFunc {
	return func(ctx context.Context, path string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read %s for content probe: %w", path, err)
		}
		return strings.Contains(string(content), substr), nil
	}
}

// MaxFileSize returns a predicate that reports true when the file's size does
// not exceed limit bytes.
func MaxFileSize(limit int64) targeting.PredicateFunc {
	return func(ctx context.Context, path string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("stat %s for size check: %w", path, err)
		}
		return info.Size() <= limit, nil
	}
}

// Package workspace enumerates candidate file paths for target matching and
// restricts them with Git change information. It is the collaborator that
// feeds pkg/targeting; the matcher itself never walks directories.
package workspace

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Walker enumerates candidate files under a workspace root.
type Walker struct {
	root   string
	logger *slog.Logger
}

// NewWalker creates a Walker rooted at root. The root must exist.
func NewWalker(root string, loggerHandler slog.Handler) (*Walker, error) {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(99)})
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "walker"))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("access workspace root %q: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %q is not a directory", absRoot)
	}
	return &Walker{root: absRoot, logger: logger}, nil
}

// Root returns the absolute workspace root.
func (w *Walker) Root() string { return w.root }

// Walk traverses the workspace and returns the candidate file list as
// slash-separated paths relative to the root, in deterministic walk order.
// Symbolic links and the .git directory are skipped. Walk honors context
// cancellation between entries.
func (w *Walker) Walk(ctx context.Context) ([]string, error) {
	w.logger.Debug("Starting workspace walk", slog.String("root", w.root))
	var candidates []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path during walk",
				slog.String("path", path), slog.String("error", err.Error()))
			if path == w.root {
				return fmt.Errorf("read workspace root %q: %w", path, err)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			w.logger.Debug("Skipping symbolic link", slog.String("path", path))
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			w.logger.Warn("Could not calculate relative path",
				slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		candidates = append(candidates, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Debug("Workspace walk completed", slog.Int("candidates", len(candidates)))
	return candidates, nil
}

// Package cli wires the workspace walker, Git restriction and path matcher
// into one scan run after configuration loading.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/marsson/sfdx-scanner/internal/cli/config"
	"github.com/marsson/sfdx-scanner/pkg/targeting"
	"github.com/marsson/sfdx-scanner/pkg/workspace"
)

// Run executes one target-selection run: enumerate the workspace, optionally
// restrict candidates to Git changes, filter them through the configured
// pattern matcher, and write the selected paths to out, one per line.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	walker, err := workspace.NewWalker(cfg.ProjectDir, logger.Handler())
	if err != nil {
		return fmt.Errorf("initialize workspace walker: %w", err)
	}
	candidates, err := walker.Walk(ctx)
	if err != nil {
		return fmt.Errorf("enumerate workspace: %w", err)
	}
	logger.Debug("Workspace enumerated", slog.Int("candidates", len(candidates)))

	if cfg.GitDiffOnly || cfg.GitSinceRef != "" {
		client := workspace.NewGitClient(logger.Handler())
		changed, err := client.ChangedFiles(cfg.ProjectDir, cfg.GitSinceRef)
		if err != nil {
			return fmt.Errorf("collect git changes: %w", err)
		}
		restricted := candidates[:0]
		for _, path := range candidates {
			if _, ok := changed[path]; ok {
				restricted = append(restricted, path)
			}
		}
		candidates = restricted
		logger.Debug("Candidates restricted to git changes", slog.Int("remaining", len(candidates)))
	}

	matcher, err := targeting.New(targeting.FromStrings(cfg.TargetPatterns),
		targeting.WithLogger(logger),
		targeting.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return fmt.Errorf("compile target patterns: %w", err)
	}

	targets, err := matcher.FilterPathsByPatterns(ctx, candidates)
	if err != nil {
		return fmt.Errorf("filter targets: %w", err)
	}

	for _, target := range targets {
		if _, err := fmt.Fprintln(out, target); err != nil {
			return fmt.Errorf("write target list: %w", err)
		}
	}
	logger.Info("Target selection complete",
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(targets)))
	return nil
}

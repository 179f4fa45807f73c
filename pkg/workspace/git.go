package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrGitOperation indicates a failure interacting with the Git repository
// backing the workspace. Check with errors.Is.
var ErrGitOperation = errors.New("git operation failed")

// GitClient reads change information from the repository containing the
// workspace, used to restrict the candidate list before matching.
type GitClient struct {
	logger *slog.Logger
}

// NewGitClient creates a go-git backed client.
func NewGitClient(loggerHandler slog.Handler) *GitClient {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(99)})
	}
	logger := slog.New(loggerHandler).With(
		slog.String("component", "gitClient"),
		slog.String("backend", "go-git"))
	return &GitClient{logger: logger}
}

// ChangedFiles returns the set of repository-relative slash paths changed in
// the repository at or above repoPath. With an empty sinceRef it reports
// staged and unstaged worktree changes against HEAD, excluding untracked
// files. With a sinceRef it reports files touched between that revision and
// HEAD.
func (c *GitClient) ChangedFiles(repoPath, sinceRef string) (map[string]struct{}, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve path %q: %v", ErrGitOperation, repoPath, err)
	}
	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: no repository at or above %q: %v", ErrGitOperation, absPath, err)
		}
		return nil, fmt.Errorf("%w: open repository at %q: %v", ErrGitOperation, absPath, err)
	}

	if sinceRef == "" {
		return c.worktreeChanges(repo, absPath)
	}
	return c.changesSince(repo, sinceRef)
}

// worktreeChanges collects staged and unstaged modifications, skipping
// untracked files.
func (c *GitClient) worktreeChanges(repo *git.Repository, repoPath string) (map[string]struct{}, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: get worktree for %q: %v", ErrGitOperation, repoPath, err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: get status for %q: %v", ErrGitOperation, repoPath, err)
	}

	changed := make(map[string]struct{}, len(status))
	for path, fileStatus := range status {
		untracked := fileStatus.Staging == git.Untracked && fileStatus.Worktree == git.Untracked
		if untracked {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			changed[filepath.ToSlash(path)] = struct{}{}
		}
	}
	c.logger.Debug("Collected worktree changes", slog.Int("count", len(changed)))
	return changed, nil
}

// changesSince diffs HEAD against the given revision and collects the touched
// paths (both sides of renames).
func (c *GitClient) changesSince(repo *git.Repository, sinceRef string) (map[string]struct{}, error) {
	sinceHash, err := repo.ResolveRevision(plumbing.Revision(sinceRef))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve revision %q: %v", ErrGitOperation, sinceRef, err)
	}
	headHash, err := repo.ResolveRevision(plumbing.Revision("HEAD"))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve HEAD: %v", ErrGitOperation, err)
	}
	sinceCommit, err := repo.CommitObject(*sinceHash)
	if err != nil {
		return nil, fmt.Errorf("%w: load commit %s: %v", ErrGitOperation, sinceHash, err)
	}
	headCommit, err := repo.CommitObject(*headHash)
	if err != nil {
		return nil, fmt.Errorf("%w: load commit %s: %v", ErrGitOperation, headHash, err)
	}

	patch, err := sinceCommit.Patch(headCommit)
	if err != nil {
		return nil, fmt.Errorf("%w: diff %s..HEAD: %v", ErrGitOperation, sinceRef, err)
	}

	changed := make(map[string]struct{})
	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()
		if from != nil {
			changed[filepath.ToSlash(from.Path())] = struct{}{}
		}
		if to != nil {
			changed[filepath.ToSlash(to.Path())] = struct{}{}
		}
	}
	c.logger.Debug("Collected changes since revision",
		slog.String("since", sinceRef), slog.Int("count", len(changed)))
	return changed, nil
}

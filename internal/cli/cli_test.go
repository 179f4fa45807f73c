package cli_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsson/sfdx-scanner/internal/cli"
	"github.com/marsson/sfdx-scanner/internal/cli/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(99)}))
}

func createProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestRunPrintsSelectedTargets(t *testing.T) {
	root := createProject(t, map[string]string{
		"force-app/main/Foo.cls":      "public class Foo {}",
		"force-app/generated/Gen.cls": "public class Gen {}",
		"docs/readme.md":              "readme",
	})

	cfg := config.Config{
		ProjectDir:     root,
		TargetPatterns: []string{"**/*.cls", "!**/generated/**"},
	}

	var out bytes.Buffer
	err := cli.Run(context.Background(), cfg, discardLogger(), &out)
	require.NoError(t, err)

	lines := strings.Fields(out.String())
	assert.Equal(t, []string{"force-app/main/Foo.cls"}, lines)
}

func TestRunEmptyPatternsSelectsEverything(t *testing.T) {
	root := createProject(t, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
	})

	cfg := config.Config{ProjectDir: root}

	var out bytes.Buffer
	err := cli.Run(context.Background(), cfg, discardLogger(), &out)
	require.NoError(t, err)

	lines := strings.Fields(out.String())
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, lines)
}

func TestRunBadPatternFails(t *testing.T) {
	root := createProject(t, map[string]string{"a.txt": "a"})

	cfg := config.Config{
		ProjectDir:     root,
		TargetPatterns: []string{"[unclosed"},
	}

	err := cli.Run(context.Background(), cfg, discardLogger(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunGitDiffOnlyRestriction(t *testing.T) {
	root := createProject(t, map[string]string{
		"tracked.cls":   "public class Tracked {}",
		"unchanged.cls": "public class Unchanged {}",
	})

	sig := &object.Signature{Name: "test", Email: "t@example.com", When: time.Now()}
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "tracked.cls"),
		[]byte("public class Tracked { /* changed */ }"), 0644))

	cfg := config.Config{
		ProjectDir:     root,
		TargetPatterns: []string{"**/*.cls"},
		GitDiffOnly:    true,
	}

	var out bytes.Buffer
	err = cli.Run(context.Background(), cfg, discardLogger(), &out)
	require.NoError(t, err)

	lines := strings.Fields(out.String())
	assert.Equal(t, []string{"tracked.cls"}, lines)
}

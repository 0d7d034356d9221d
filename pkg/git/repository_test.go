package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository with one initial commit
// and returns its path together with a CLI executor bound to it.
func setupTestRepo(t *testing.T) (string, *CLI) {
	t.Helper()

	dir := t.TempDir()
	cli := NewCLI(dir)
	ctx := context.Background()

	mustRun := func(args ...string) {
		t.Helper()
		_, _, err := cli.Run(ctx, args...)
		require.NoError(t, err, "git %s", strings.Join(args, " "))
	}

	mustRun("init", "--initial-branch", "main")
	mustRun("config", "user.name", "Test User")
	mustRun("config", "user.email", "test@example.com")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.txt"), []byte("initial content\n"), 0o644))
	mustRun("add", "test.txt")
	mustRun("commit", "-m", "Initial commit")

	return dir, cli
}

func commitFile(t *testing.T, cli *CLI, dir, name, content, message string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, _, err := cli.Run(ctx, "add", name)
	require.NoError(t, err)
	_, _, err = cli.Run(ctx, "commit", "-m", message)
	require.NoError(t, err)

	sha, _, err := cli.Run(ctx, "rev-parse", "HEAD")
	require.NoError(t, err)
	return strings.TrimSpace(sha)
}

func TestMergeParentsOfMergeCommit(t *testing.T) {
	dir, cli := setupTestRepo(t)
	ctx := context.Background()

	mainTip, _, err := cli.Run(ctx, "rev-parse", "HEAD")
	require.NoError(t, err)

	_, _, err = cli.Run(ctx, "switch", "--create", "feature")
	require.NoError(t, err)
	featureTip := commitFile(t, cli, dir, "feature.txt", "feature\n", "Add feature")

	_, _, err = cli.Run(ctx, "switch", "main")
	require.NoError(t, err)
	_, _, err = cli.Run(ctx, "merge", "--no-ff", "feature", "-m", "Merge feature")
	require.NoError(t, err)

	mergeSHA, _, err := cli.Run(ctx, "rev-parse", "HEAD")
	require.NoError(t, err)

	repo, err := Open(dir)
	require.NoError(t, err)

	parents, err := repo.MergeParents(strings.TrimSpace(mergeSHA))
	require.NoError(t, err)

	require.Len(t, parents, 2)
	assert.Equal(t, strings.TrimSpace(mainTip), parents[0])
	assert.Equal(t, featureTip, parents[1])
}

func TestMergeParentsOfRegularCommit(t *testing.T) {
	dir, cli := setupTestRepo(t)

	sha := commitFile(t, cli, dir, "second.txt", "second\n", "Second commit")

	repo, err := Open(dir)
	require.NoError(t, err)

	parents, err := repo.MergeParents(sha)
	require.NoError(t, err)

	assert.Len(t, parents, 1)
}

func TestMergeParentsUnknownSHA(t *testing.T) {
	dir, _ := setupTestRepo(t)

	repo, err := Open(dir)
	require.NoError(t, err)

	_, err = repo.MergeParents("0000000000000000000000000000000000000000")

	assert.Error(t, err)
}

func TestOpenNonRepository(t *testing.T) {
	_, err := Open(t.TempDir())

	assert.Error(t, err)
}

package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRepo creates dir with a .git directory inside.
func makeRepo(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return dir
}

// makeWorktree creates dir with a .git file, the layout submodules and linked
// worktrees use.
func makeWorktree(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: ../main/.git/worktrees/wt\n"), 0o644))
	return dir
}

func repoPaths(t *testing.T, roots, extra, excludes []string) []string {
	t.Helper()
	var paths []string
	for _, r := range DiscoverRepositories(roots, extra, excludes) {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestDiscoverRepositoriesBasic(t *testing.T) {
	root := t.TempDir()
	alpha := makeRepo(t, filepath.Join(root, "alpha"))
	beta := makeRepo(t, filepath.Join(root, "projects", "beta"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	paths := repoPaths(t, []string{root}, nil, nil)
	assert.ElementsMatch(t, []string{alpha, beta}, paths)
}

func TestDiscoverRepositoriesPrunesNested(t *testing.T) {
	root := t.TempDir()
	outer := makeRepo(t, filepath.Join(root, "outer"))
	// A repository below another repository is shadowed by pruning.
	makeRepo(t, filepath.Join(outer, "vendor", "inner"))

	paths := repoPaths(t, []string{root}, nil, nil)
	assert.Equal(t, []string{outer}, paths)
}

func TestDiscoverRepositoriesGitFileMarker(t *testing.T) {
	root := t.TempDir()
	wt := makeWorktree(t, filepath.Join(root, "feature-wt"))

	paths := repoPaths(t, []string{root}, nil, nil)
	assert.Equal(t, []string{wt}, paths)
}

func TestDiscoverRepositoriesExcludes(t *testing.T) {
	root := t.TempDir()
	keep := makeRepo(t, filepath.Join(root, "keep"))
	makeRepo(t, filepath.Join(root, "node_modules", "dep"))
	makeRepo(t, filepath.Join(root, "archive-2024"))

	paths := repoPaths(t, []string{root}, nil, []string{"node_modules/", "archive"})
	assert.Equal(t, []string{keep}, paths)
}

func TestDiscoverRepositoriesExtraPaths(t *testing.T) {
	root := t.TempDir()
	inRoot := makeRepo(t, filepath.Join(root, "a"))

	elsewhere := t.TempDir()
	extra := makeRepo(t, filepath.Join(elsewhere, "b"))
	notARepo := filepath.Join(elsewhere, "plain")
	require.NoError(t, os.MkdirAll(notARepo, 0o755))

	paths := repoPaths(t, []string{root}, []string{extra, notARepo}, nil)
	assert.Equal(t, []string{inRoot, extra}, paths, "extra paths append after walked roots; non-repositories are dropped")
}

func TestDiscoverRepositoriesDedupes(t *testing.T) {
	root := t.TempDir()
	repo := makeRepo(t, filepath.Join(root, "a"))

	paths := repoPaths(t, []string{root, root}, []string{repo}, nil)
	assert.Equal(t, []string{repo}, paths)
}

func TestDiscoverRepositoriesOrderStable(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		makeRepo(t, filepath.Join(root, name))
	}

	first := repoPaths(t, []string{root}, nil, nil)
	for range 5 {
		assert.Equal(t, first, repoPaths(t, []string{root}, nil, nil))
	}
}

func TestDiscoverRepositoriesMissingRoot(t *testing.T) {
	paths := repoPaths(t, []string{filepath.Join(t.TempDir(), "nope")}, nil, nil)
	assert.Empty(t, paths)
}

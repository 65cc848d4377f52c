package core

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
)

// repoMarker is the metadata directory identifying a repository root.
const repoMarker = ".git"

// DiscoverRepositories walks the given roots and explicit extra paths and
// returns a deduplicated, order-stable list of repositories. Traversal prunes
// on match: once a directory is identified as a repository its subtree is not
// descended, so a repository's metadata tree and repositories nested below it
// are never walked. Directories that cannot be statted are skipped silently.
func DiscoverRepositories(roots, extraPaths, excludes []string) []schema.Repository {
	seen := make(map[string]struct{})
	var repos []schema.Repository

	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		repos = append(repos, schema.Repository{Name: filepath.Base(path), Path: path})
	}

	for _, root := range roots {
		walkRoot(root, excludes, add)
	}
	for _, p := range extraPaths {
		if isRepository(p) {
			add(p)
		}
	}
	return repos
}

// walkRoot scans one root for repositories, pruning matched subtrees.
func walkRoot(root string, excludes []string, add func(string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, never fatal for the scan.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == repoMarker {
			return filepath.SkipDir
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && rel != "." && contract.ShouldIgnore(filepath.ToSlash(rel)+"/", excludes) {
			return filepath.SkipDir
		}

		if isRepository(path) {
			add(path)
			return filepath.SkipDir
		}
		return nil
	})
}

// isRepository reports whether dir carries the repository marker.
func isRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, repoMarker))
	if err != nil {
		return false
	}
	// Submodules and worktrees keep a .git file instead of a directory;
	// both count as repository roots.
	return info.IsDir() || info.Mode().IsRegular()
}

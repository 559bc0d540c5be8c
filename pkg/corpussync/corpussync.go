// Package corpussync fetches a pinned revision of a git repository of
// type-universe YAML fixtures (pkg/config documents, typically a shared
// corpus of real-world type hierarchies used to drive pkg/fixtures-style
// regression scenarios) into a local cache directory, adapted from the
// teacher project's git-based dependency fetcher.
package corpussync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source pins one corpus repository to a specific revision.
type Source struct {
	URL    string
	Rev    string
	Tag    string
	Branch string
}

// Sync clones Source into a subdirectory of cacheDir named for the
// resolved commit, reusing an existing checkout if one is already
// present. It returns the checkout's path and the resolved commit hash.
func Sync(cacheDir string, src Source) (dir string, commit string, err error) {
	baseDir := filepath.Join(cacheDir, sanitizeName(src.URL))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("corpussync: %w", err)
	}

	revision, err := revisionFromSource(src)
	if err != nil {
		return "", "", fmt.Errorf("corpussync: %w", err)
	}

	tmpDir, err := os.MkdirTemp(baseDir, "checkout-*")
	if err != nil {
		return "", "", fmt.Errorf("corpussync: %w", err)
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", fmt.Errorf("corpussync: %w", err)
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               src.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("corpussync: clone %s: %w", src.URL, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("corpussync: resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, hash.String())
	if _, statErr := os.Stat(targetDir); statErr == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("corpussync: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("corpussync: checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("corpussync: %w", err)
	}
	return targetDir, hash.String(), nil
}

func revisionFromSource(src Source) (plumbing.Revision, error) {
	if rev := strings.TrimSpace(src.Rev); rev != "" {
		return plumbing.Revision(rev), nil
	}
	if tag := strings.TrimSpace(src.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), nil
	}
	if branch := strings.TrimSpace(src.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), nil
	}
	return "", fmt.Errorf("source requires one of rev, tag, or branch")
}

func sanitizeName(url string) string {
	name := strings.TrimSuffix(url, ".git")
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "git@")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
}

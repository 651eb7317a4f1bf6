package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher keeps checkouts of git-hosted preludes under a cache root,
// one directory per repository and commit.
type GitFetcher struct {
	cacheDir string
}

// NewGitFetcher caches checkouts under home/git.
func NewGitFetcher(home string) *GitFetcher {
	if home == "" {
		return nil
	}
	return &GitFetcher{cacheDir: filepath.Join(home, "git")}
}

// Checkout makes the revision named by spec available on disk and returns
// the checkout directory and the resolved commit. A non-empty locked commit
// takes precedence over the spec's pin and skips cloning when that commit is
// already cached.
func (g *GitFetcher) Checkout(spec *PreludeSpec, locked string) (string, string, error) {
	if g == nil {
		return "", "", errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return "", "", fmt.Errorf("prelude %q: git URL required", spec.Path)
	}
	revision, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", "", err
	}
	if locked = strings.TrimSpace(locked); locked != "" {
		revision = plumbing.Revision(locked)
	}
	baseDir := filepath.Join(g.cacheDir, sanitizePathSegment(url))
	commit, err := ensureGitCheckout(baseDir, url, revision)
	if err != nil {
		return "", "", err
	}
	return filepath.Join(baseDir, commit), commit, nil
}

func ensureGitCheckout(baseDir, url string, revision plumbing.Revision) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}

	if plumbing.IsHash(string(revision)) {
		existing := filepath.Join(baseDir, string(revision))
		if _, err := os.Stat(existing); err == nil {
			return string(revision), nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               url,
		Tags:              git.AllTags,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	commit := hash.String()
	targetDir := filepath.Join(baseDir, commit)
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return commit, nil
}

func gitRevisionFromSpec(spec *PreludeSpec) (plumbing.Revision, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		// Only the default branch exists locally after a clone.
		return plumbing.Revision("refs/remotes/origin/" + branch), nil
	}
	return "", fmt.Errorf("git preludes require rev, tag, or branch")
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if result == "" {
		return "head"
	}
	return result
}

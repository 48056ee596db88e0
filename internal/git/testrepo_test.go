package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a throwaway repository built with go-git.
type testRepo struct {
	tb   testing.TB
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newTestRepo(tb testing.TB) *testRepo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &testRepo{tb: tb, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) path(rel string) string {
	return filepath.Join(r.dir, filepath.FromSlash(rel))
}

// writeFile writes a file without staging it.
func (r *testRepo) writeFile(rel, content string) {
	r.tb.Helper()
	full := r.path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
}

// write writes and stages a file.
func (r *testRepo) write(rel, content string) {
	r.tb.Helper()
	r.writeFile(rel, content)
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

// symlink creates and stages a link at rel pointing to target.
func (r *testRepo) symlink(target, rel string) {
	r.tb.Helper()
	if err := os.Symlink(target, r.path(rel)); err != nil {
		r.tb.Skipf("symlinks unavailable: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

func (r *testRepo) commit(msg string, when time.Time) plumbing.Hash {
	r.tb.Helper()
	return r.commitAs(msg, when, when)
}

func (r *testRepo) commitAs(msg string, author, committer time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.tb.Helper()
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:    &object.Signature{Name: "Test", Email: "test@example.com", When: author},
		Committer: &object.Signature{Name: "Test", Email: "test@example.com", When: committer},
		Parents:   parents,
	})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return h
}

func (r *testRepo) checkout(branch string, create bool) {
	r.tb.Helper()
	if err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}); err != nil {
		r.tb.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (r *testRepo) currentBranch() string {
	r.tb.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

// lookup opens a Lookup over the repository with a fixed clock.
func (r *testRepo) lookup(source DateSource, zone *time.Location, maxCommits int, backend Backend, now time.Time) *Lookup {
	r.tb.Helper()
	cfg, err := NewLookupConfig(source, zone, maxCommits, backend)
	if err != nil {
		r.tb.Fatalf("NewLookupConfig: %v", err)
	}
	l, err := Open(r.dir, cfg, WithClock(func() time.Time { return now }))
	if err != nil {
		r.tb.Fatalf("Open: %v", err)
	}
	r.tb.Cleanup(func() { l.Close() })
	return l
}

func gmt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// backends lists the backends available on this machine.
func backends(tb testing.TB) []Backend {
	tb.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		return []Backend{BackendGoGit}
	}
	return []Backend{BackendGoGit, BackendGitCLI}
}

package git

import (
	"context"

	"github.com/go-git/go-git/v5"
)

// IsDirty compares work tree, index and HEAD for the path.
// Ignored files do not show up in the status and are reported clean.
func (b *goGitBackend) IsDirty(_ context.Context, path string) (bool, error) {
	if _, err := headHash(b.repo); err != nil {
		return false, err
	}

	status, err := b.worktreeStatus()
	if err != nil {
		return false, err
	}

	// status.File would insert an untracked entry for unknown paths.
	fs, ok := status[path]
	if !ok {
		return false, nil
	}
	return fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified, nil
}

// worktreeStatus computes the status of the whole work tree, or returns the
// held snapshot.
func (b *goGitBackend) worktreeStatus() (git.Status, error) {
	if b.status != nil {
		return b.status, nil
	}

	wt, err := b.repo.Worktree()
	if err != nil {
		return nil, stateError("open work tree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, stateError("read status", err)
	}
	b.statusReads++

	if b.holding {
		b.status = status
	}
	return status, nil
}

func (b *goGitBackend) holdStatus() {
	b.holding = true
}

func (b *goGitBackend) releaseStatus() {
	b.holding = false
	b.status = nil
}

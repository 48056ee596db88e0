package git

import "context"

// DirtinessProbe reports whether a path has uncommitted changes.
type DirtinessProbe interface {
	// IsDirty reports whether the repo-relative path is modified, deleted,
	// staged or untracked relative to HEAD.
	IsDirty(ctx context.Context, path string) (bool, error)
}

// statusHolder is implemented by probes whose status snapshot covers the whole
// work tree. While held, one snapshot answers every IsDirty call.
type statusHolder interface {
	holdStatus()
	releaseStatus()
}

// HistorySource opens path-filtered history walks starting at HEAD.
type HistorySource interface {
	// Walk returns a fresh walker that visits at most maxCommits commits.
	Walk(ctx context.Context, path string, maxCommits int) (HistoryWalker, error)
}

// HistoryWalker yields the commits that touched a path, newest first.
// A walker is single-use; open a new one to start over.
type HistoryWalker interface {
	// Next returns the next matching commit, or io.EOF when the walk is done.
	Next() (*CommitRecord, error)
	// Close releases the walker's resources.
	Close() error
}

// Compile-time interface conformance checks.
var (
	_ DirtinessProbe = (*goGitBackend)(nil)
	_ HistorySource  = (*goGitBackend)(nil)
	_ HistoryWalker  = (*goGitWalker)(nil)
	_ statusHolder   = (*goGitBackend)(nil)

	_ DirtinessProbe = (*gitCLIBackend)(nil)
	_ HistorySource  = (*gitCLIBackend)(nil)
	_ HistoryWalker  = (*gitLogWalker)(nil)
)

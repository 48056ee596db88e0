package git

import (
	"context"
	"io"
	"slices"
)

// MockCommit is a commit in a MockRepository together with the paths it changed.
type MockCommit struct {
	Record CommitRecord
	Paths  []string
}

// MockRepository is a test double for the status and history backends.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockRepository struct {
	Commits    []MockCommit // newest first
	DirtyPaths map[string]bool
	Error      error

	// Walks counts the walkers opened; Closed counts those released.
	Walks  int
	Closed int
}

// NewMockRepository creates a new MockRepository with the given history.
func NewMockRepository(commits []MockCommit, dirty ...string) *MockRepository {
	m := &MockRepository{Commits: commits, DirtyPaths: map[string]bool{}}
	for _, p := range dirty {
		m.DirtyPaths[p] = true
	}
	return m
}

// IsDirty returns whether path was listed as dirty, or the predefined error.
func (m *MockRepository) IsDirty(_ context.Context, path string) (bool, error) {
	if m.Error != nil {
		return false, m.Error
	}
	return m.DirtyPaths[path], nil
}

// Walk returns a walker over the predefined commits.
func (m *MockRepository) Walk(_ context.Context, path string, maxCommits int) (HistoryWalker, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	m.Walks++
	return &mockWalker{repo: m, path: path, budget: maxCommits}, nil
}

type mockWalker struct {
	repo    *MockRepository
	path    string
	budget  int
	visited int
	closed  bool
}

func (w *mockWalker) Next() (*CommitRecord, error) {
	for w.visited < w.budget && w.visited < len(w.repo.Commits) {
		c := w.repo.Commits[w.visited]
		w.visited++
		if slices.Contains(c.Paths, w.path) {
			rec := c.Record
			return &rec, nil
		}
	}
	return nil, io.EOF
}

func (w *mockWalker) Close() error {
	if !w.closed {
		w.closed = true
		w.repo.Closed++
	}
	return nil
}

// Compile-time interface conformance check.
var (
	_ DirtinessProbe = (*MockRepository)(nil)
	_ HistorySource  = (*MockRepository)(nil)
)

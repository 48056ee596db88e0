package git

import (
	"context"
	"errors"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Walk starts a committer-time ordered walk at HEAD.
func (b *goGitBackend) Walk(ctx context.Context, path string, maxCommits int) (HistoryWalker, error) {
	head, err := headHash(b.repo)
	if err != nil {
		return nil, err
	}

	iter, err := b.repo.Log(&git.LogOptions{From: head, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, stateError("start history walk", err)
	}

	shallow := map[plumbing.Hash]bool{}
	hashes, err := b.repo.Storer.Shallow()
	if err != nil {
		iter.Close()
		return nil, stateError("read shallow commits", err)
	}
	for _, h := range hashes {
		shallow[h] = true
	}

	return &goGitWalker{
		ctx:     ctx,
		repo:    b.repo,
		iter:    iter,
		path:    path,
		budget:  maxCommits,
		shallow: shallow,
	}, nil
}

// goGitWalker filters a commit iterator down to the commits that touched path.
// Every commit pulled from the iterator counts against the budget, matched or not.
type goGitWalker struct {
	ctx     context.Context
	repo    *git.Repository
	iter    object.CommitIter
	path    string
	budget  int
	visited int
	shallow map[plumbing.Hash]bool
	closed  bool
}

// Next returns the next commit that changed the path, or io.EOF.
func (w *goGitWalker) Next() (*CommitRecord, error) {
	for !w.closed && w.visited < w.budget {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}

		c, err := w.iter.Next()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, stateError("read commit", err)
		}
		w.visited++

		touched, err := w.touches(c)
		if err != nil {
			return nil, stateError("compare trees of "+c.Hash.String(), err)
		}
		if touched {
			rec := commitRecordFromObject(c)
			return &rec, nil
		}
	}
	return nil, io.EOF
}

// Visited returns how many commits the walk has consumed so far.
func (w *goGitWalker) Visited() int {
	return w.visited
}

// Close releases the underlying iterator. It is safe to call more than once.
func (w *goGitWalker) Close() error {
	if !w.closed {
		w.closed = true
		w.iter.Close()
	}
	return nil
}

// touches reports whether the path's tree entry in c differs from its entry in
// every parent. Root and shallow-boundary commits are compared to an empty tree.
func (w *goGitWalker) touches(c *object.Commit) (bool, error) {
	own, err := entryAt(c, w.path)
	if err != nil {
		return false, err
	}
	if c.NumParents() == 0 || w.shallow[c.Hash] {
		return own.exists, nil
	}

	for _, ph := range c.ParentHashes {
		parent, err := w.repo.CommitObject(ph)
		if err != nil {
			return false, err
		}
		theirs, err := entryAt(parent, w.path)
		if err != nil {
			return false, err
		}
		if own == theirs {
			return false, nil
		}
	}
	return true, nil
}

type pathEntry struct {
	exists bool
	hash   plumbing.Hash
	mode   filemode.FileMode
}

func entryAt(c *object.Commit, path string) (pathEntry, error) {
	tree, err := c.Tree()
	if err != nil {
		return pathEntry{}, err
	}
	e, err := tree.FindEntry(path)
	if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
		return pathEntry{}, nil
	}
	if err != nil {
		return pathEntry{}, err
	}
	return pathEntry{exists: true, hash: e.Hash, mode: e.Mode}, nil
}

func commitRecordFromObject(c *object.Commit) CommitRecord {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return CommitRecord{
		Hash:    c.Hash.String(),
		Tree:    c.TreeHash.String(),
		Parents: parents,
		Author: Identity{
			Name:  c.Author.Name,
			Email: c.Author.Email,
			When:  c.Author.When,
		},
		Committer: Identity{
			Name:  c.Committer.Name,
			Email: c.Committer.Email,
			When:  c.Committer.When,
		},
	}
}

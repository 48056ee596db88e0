package git

import (
	"errors"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// goGitBackend answers status and history queries from the object store in-process.
type goGitBackend struct {
	repo *git.Repository

	// status is kept between holdStatus and releaseStatus.
	status      git.Status
	holding     bool
	statusReads int
}

// gitCLIBackend answers the same queries by running the git executable in root.
type gitCLIBackend struct {
	root string
}

// openRepository opens the repository that contains anyPath and returns it with
// its work tree root.
func openRepository(anyPath string) (*git.Repository, string, error) {
	start, err := repoRootFor(anyPath)
	if err != nil {
		return nil, "", stateError("locate repository", err)
	}
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", stateError("open repository from "+start, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", stateError("repository has no work tree", err)
	}
	return repo, wt.Filesystem.Root(), nil
}

func closeRepository(repo *git.Repository) error {
	if c, ok := repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// headHash resolves HEAD to a commit hash.
func headHash(repo *git.Repository) (plumbing.Hash, error) {
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, stateError("HEAD does not point to a commit", err)
		}
		return plumbing.ZeroHash, stateError("resolve HEAD", err)
	}
	return ref.Hash(), nil
}

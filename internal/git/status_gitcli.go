package git

import "context"

// IsDirty asks `git status` about the single path. Any porcelain entry, untracked
// included, means the path is dirty.
func (b *gitCLIBackend) IsDirty(ctx context.Context, path string) (bool, error) {
	if err := b.verifyHead(ctx); err != nil {
		return false, err
	}
	out, err := runGit(ctx, b.root, "status", "--porcelain", "-z", "--untracked-files=all", "--", path)
	if err != nil {
		return false, stateError("read status", err)
	}
	return len(out) > 0, nil
}

package git

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver maps file system paths to paths relative to a work tree root.
type PathResolver struct {
	root string
}

// NewPathResolver resolves the root once; later calls do no further root lookups.
func NewPathResolver(root string) (*PathResolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &PathResolver{root: filepath.Clean(resolved)}, nil
}

// Root returns the resolved work tree root.
func (r *PathResolver) Root() string {
	return r.root
}

// Relativize returns path relative to the root with forward slashes.
// Relative inputs are taken relative to the current directory.
// Symlinks are resolved in the parent directories only. A link as the last
// component is tracked under its own name, so it is never followed.
func (r *PathResolver) Relativize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, err := resolveExisting(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	resolved := filepath.Join(dir, filepath.Base(abs))

	rel, err := filepath.Rel(r.root, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathOutsideRepositoryError{Path: path, Root: r.root}
	}
	return normalizeRepoPath(filepath.ToSlash(rel)), nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of p, so
// deleted files still resolve through their parent directory.
func resolveExisting(p string) (string, error) {
	var missing []string
	cur := filepath.Clean(p)
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p, nil
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}
}

// repoRootFor returns the directory repository detection starts from.
func repoRootFor(anyPath string) (string, error) {
	abs, err := filepath.Abs(anyPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

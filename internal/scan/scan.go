// Package scan finds the files of a work tree and looks up the year each one last changed.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// YearLookup is the part of *git.Lookup a scan needs.
type YearLookup interface {
	Root() string
	YearsOfLastChange(ctx context.Context, files []string) (map[string]int, error)
}

// Options controls which files a scan visits.
type Options struct {
	Include []string
	Exclude []string
}

// Item is the result for one file.
// Year is 0 when no commit within the budget touched the file.
type Item struct {
	Path string
	Year int
}

// Result holds the items of a scan, sorted by path.
type Result struct {
	Items []Item
}

// NewestYear returns the largest year in the result, or 0.
func (r *Result) NewestYear() int {
	newest := 0
	for _, item := range r.Items {
		if item.Year > newest {
			newest = item.Year
		}
	}
	return newest
}

// UnknownCount returns the number of files with no year within the budget.
func (r *Result) UnknownCount() int {
	n := 0
	for _, item := range r.Items {
		if item.Year == 0 {
			n++
		}
	}
	return n
}

// Run walks dir, which must lie inside the work tree of l, and looks up every
// file that passes the filters in one batch. Patterns match
// repository-relative paths with forward slashes.
func Run(ctx context.Context, l YearLookup, dir string, opts Options) (*Result, error) {
	if err := validatePatterns(opts); err != nil {
		return nil, err
	}

	files, err := Files(l.Root(), dir, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs := make([]string, len(files))
	for i, rel := range files {
		abs[i] = filepath.Join(l.Root(), filepath.FromSlash(rel))
	}
	years, err := l.YearsOfLastChange(ctx, abs)
	if err != nil {
		return nil, err
	}

	result := &Result{Items: make([]Item, 0, len(files))}
	for i, rel := range files {
		result.Items = append(result.Items, Item{Path: rel, Year: years[abs[i]]})
	}
	return result, nil
}

// Files lists the regular files and symlinks under dir as sorted
// repository-relative paths. Links are listed, not followed. The .git
// directory is never entered.
func Files(root, dir string, opts Options) ([]string, error) {
	if err := validatePatterns(opts); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}

	var files []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return fmt.Errorf("%s is outside the repository %s", path, absRoot)
		}

		ok, err := matchesFilters(rel, opts)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func matchesFilters(path string, opts Options) (bool, error) {
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range opts.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(opts.Include) == 0 {
		return true, nil
	}

	for _, pattern := range opts.Include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}

func validatePatterns(opts Options) error {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

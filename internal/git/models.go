package git

import (
	"strings"
	"time"
)

// Identity is the author or committer of a commit.
// When keeps the zone offset recorded in the commit.
type Identity struct {
	Name  string
	Email string
	When  time.Time
}

// CommitRecord represents the parts of a commit a lookup needs.
type CommitRecord struct {
	Hash      string
	Tree      string
	Parents   []string
	Author    Identity
	Committer Identity
}

// ShortHash returns the first 7 characters of the commit hash.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// IsMerge reports whether the commit has more than one parent.
func (c CommitRecord) IsMerge() bool {
	return len(c.Parents) > 1
}

// normalizeRepoPath turns an OS path into the forward-slash form git uses.
func normalizeRepoPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}

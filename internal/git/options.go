package git

import (
	"strings"
	"time"
)

// DefaultMaxCommits is the number of commits a lookup visits unless configured otherwise.
const DefaultMaxCommits = 10

// DateSource selects which identity of a commit supplies its date.
type DateSource int

const (
	DateSourceCommitter DateSource = iota
	DateSourceAuthor
)

// String returns a string representation of the date source.
func (s DateSource) String() string {
	switch s {
	case DateSourceCommitter:
		return "committer"
	case DateSourceAuthor:
		return "author"
	default:
		return "unknown"
	}
}

// ParseDateSource parses "author" or "committer" (case-insensitive).
// The misspelling "commiter" is accepted as well.
func ParseDateSource(s string) (DateSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "committer", "commiter":
		return DateSourceCommitter, nil
	case "author":
		return DateSourceAuthor, nil
	default:
		return 0, configError("unknown date source %q (expected author or committer)", s)
	}
}

// Backend selects how the repository is queried.
type Backend int

const (
	// BackendGoGit reads the object store in-process through go-git.
	BackendGoGit Backend = iota
	// BackendGitCLI shells out to the git executable.
	BackendGitCLI
)

// String returns a string representation of the backend.
func (b Backend) String() string {
	switch b {
	case BackendGoGit:
		return "go-git"
	case BackendGitCLI:
		return "git"
	default:
		return "unknown"
	}
}

// ParseBackend parses "go-git" or "git". An empty string selects go-git.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "go-git", "gogit":
		return BackendGoGit, nil
	case "git", "cli", "git-cli":
		return BackendGitCLI, nil
	default:
		return 0, configError("unknown backend %q (expected go-git or git)", s)
	}
}

// ParseTimeZone loads a zone by IANA name. An empty name yields nil (no override).
func ParseTimeZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, configError("unknown time zone %q: %v", name, err)
	}
	return loc, nil
}

// LookupConfig is the validated, immutable configuration of a Lookup.
type LookupConfig struct {
	dateSource DateSource
	timeZone   *time.Location
	maxCommits int
	backend    Backend
}

// NewLookupConfig validates the combination of options.
// A time zone override is rejected for the author date source because author
// identities carry their own zone.
func NewLookupConfig(source DateSource, timeZone *time.Location, maxCommits int, backend Backend) (LookupConfig, error) {
	switch source {
	case DateSourceCommitter, DateSourceAuthor:
	default:
		return LookupConfig{}, configError("unexpected date source %d", int(source))
	}
	if source == DateSourceAuthor && timeZone != nil {
		return LookupConfig{}, configError("time zone must be unset with date source %s because git author identities already contain time zone information", source)
	}
	if maxCommits < 1 {
		return LookupConfig{}, configError("max commits must be at least 1, got %d", maxCommits)
	}
	switch backend {
	case BackendGoGit, BackendGitCLI:
	default:
		return LookupConfig{}, configError("unexpected backend %d", int(backend))
	}
	return LookupConfig{
		dateSource: source,
		timeZone:   timeZone,
		maxCommits: maxCommits,
		backend:    backend,
	}, nil
}

func (c LookupConfig) DateSource() DateSource { return c.dateSource }
func (c LookupConfig) MaxCommits() int        { return c.maxCommits }
func (c LookupConfig) Backend() Backend       { return c.backend }

// TimeZone returns the override zone, or nil when none is set.
func (c LookupConfig) TimeZone() *time.Location { return c.timeZone }

// EffectiveZone is the zone used for committer dates and for "now".
func (c LookupConfig) EffectiveZone() *time.Location {
	if c.timeZone != nil {
		return c.timeZone
	}
	return DefaultZone
}

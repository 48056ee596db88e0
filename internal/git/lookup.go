package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// Lookup answers "in which year did this file last change?" for one repository.
//
// A Lookup may be reused for any number of files. Calls are serialized with a
// mutex because go-git does not promise concurrent reads on one repository handle.
type Lookup struct {
	mu sync.Mutex

	cfg       LookupConfig
	resolver  *PathResolver
	probe     DirtinessProbe
	history   HistorySource
	timestamp timestampFunc
	now       func() time.Time
	logger    *logrus.Logger

	repo *git.Repository // nil when built from custom components
}

// Option customizes a Lookup.
type Option func(*Lookup)

// WithLogger sets the logger used for per-commit debug tracing.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock replaces time.Now as the source of "now" for dirty files.
func WithClock(now func() time.Time) Option {
	return func(l *Lookup) {
		if now != nil {
			l.now = now
		}
	}
}

// Open locates the repository containing anyPath and prepares a Lookup over it.
func Open(anyPath string, cfg LookupConfig, opts ...Option) (*Lookup, error) {
	repo, root, err := openRepository(anyPath)
	if err != nil {
		return nil, err
	}
	resolver, err := NewPathResolver(root)
	if err != nil {
		closeRepository(repo)
		return nil, stateError("resolve work tree root", err)
	}

	var probe DirtinessProbe
	var history HistorySource
	switch cfg.Backend() {
	case BackendGitCLI:
		b := &gitCLIBackend{root: resolver.Root()}
		probe, history = b, b
	default:
		b := &goGitBackend{repo: repo}
		probe, history = b, b
	}

	l := NewLookup(cfg, resolver, probe, history, opts...)
	l.repo = repo
	return l, nil
}

// NewLookup assembles a Lookup from explicit components.
func NewLookup(cfg LookupConfig, resolver *PathResolver, probe DirtinessProbe, history HistorySource, opts ...Option) *Lookup {
	l := &Lookup{
		cfg:       cfg,
		resolver:  resolver,
		probe:     probe,
		history:   history,
		timestamp: newTimestampFunc(cfg),
		now:       time.Now,
		logger:    defaultLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Config returns the configuration the Lookup was built with.
func (l *Lookup) Config() LookupConfig {
	return l.cfg
}

// Root returns the work tree root.
func (l *Lookup) Root() string {
	return l.resolver.Root()
}

// YearOfLastChange returns the year of the newest commit within the configured
// budget that changed file. A dirty file yields the current year. 0 means no
// such commit was found among the inspected commits.
func (l *Lookup) YearOfLastChange(ctx context.Context, file string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.yearOfLastChange(ctx, file)
}

// YearsOfLastChange runs YearOfLastChange for each file in order and stops at
// the first error. The work tree status is read once for the whole batch, so
// edits made while it runs may go unnoticed.
func (l *Lookup) YearsOfLastChange(ctx context.Context, files []string) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.probe.(statusHolder); ok {
		h.holdStatus()
		defer h.releaseStatus()
	}

	years := make(map[string]int, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return years, err
		}
		y, err := l.yearOfLastChange(ctx, f)
		if err != nil {
			return years, fmt.Errorf("%s: %w", f, err)
		}
		years[f] = y
	}
	return years, nil
}

func (l *Lookup) yearOfLastChange(ctx context.Context, file string) (int, error) {
	path, err := l.resolver.Relativize(file)
	if err != nil {
		return 0, err
	}
	log := l.logger.WithField("path", path)

	dirty, err := l.probe.IsDirty(ctx, path)
	if err != nil {
		return 0, err
	}
	if dirty {
		year := Timestamp{Instant: l.now(), Zone: l.cfg.EffectiveZone()}.Year()
		log.WithField("year", year).Debug("Returning the current year as the file is modified or untracked")
		return year, nil
	}

	walker, err := l.history.Walk(ctx, path, l.cfg.MaxCommits())
	if err != nil {
		return 0, err
	}
	defer walker.Close()

	year := 0
	for {
		commit, err := walker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}

		ts := l.timestamp(*commit)
		y := ts.Year()
		log.WithFields(logrus.Fields{
			"commit": commit.ShortHash(),
			"merge":  commit.IsMerge(),
			"source": l.cfg.DateSource().String(),
			"when":   ts.Instant.Format(time.RFC3339),
			"zone":   ts.Zone.String(),
			"year":   y,
		}).Debug("Commit changed file")
		if y > year {
			year = y
		}
	}

	if v, ok := walker.(interface{ Visited() int }); ok {
		log = log.WithField("visited", v.Visited())
	}
	if year == 0 {
		log.WithField("maxCommits", l.cfg.MaxCommits()).Debug("No commit changed file within the inspected commits")
	} else {
		log.WithField("year", year).Debug("Resolved year of last change")
	}
	return year, nil
}

// Close releases the repository handle. The Lookup must not be used afterwards.
func (l *Lookup) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.repo == nil {
		return nil
	}
	err := closeRepository(l.repo)
	l.repo = nil
	return err
}

package git

import "time"

// DefaultZone is used for committer dates and "now" when no zone override is set.
var DefaultZone = time.UTC

// Timestamp is an instant paired with the zone its calendar year is read in.
type Timestamp struct {
	Instant time.Time
	Zone    *time.Location
}

// Year returns the Gregorian year of the instant in the timestamp's zone.
func (t Timestamp) Year() int {
	zone := t.Zone
	if zone == nil {
		zone = DefaultZone
	}
	return t.Instant.In(zone).Year()
}

// timestampFunc extracts the date of a commit for one date source.
type timestampFunc func(CommitRecord) Timestamp

// newTimestampFunc binds the extraction for a date source once, so the walk
// does not branch per commit.
func newTimestampFunc(cfg LookupConfig) timestampFunc {
	if cfg.DateSource() == DateSourceAuthor {
		return authorTimestamp
	}
	zone := cfg.EffectiveZone()
	return func(c CommitRecord) Timestamp {
		return Timestamp{Instant: c.Committer.When, Zone: zone}
	}
}

func authorTimestamp(c CommitRecord) Timestamp {
	return Timestamp{Instant: c.Author.When, Zone: c.Author.When.Location()}
}

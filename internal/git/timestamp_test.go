package git

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestTimestampFunc(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ist := time.FixedZone("IST", 5*3600+1800)

	commit := CommitRecord{
		Author:    Identity{When: time.Date(2019, time.December, 31, 23, 0, 0, 0, est)},
		Committer: Identity{When: time.Date(2020, time.January, 1, 3, 0, 0, 0, ist)},
	}

	tests := []struct {
		name     string
		source   DateSource
		zone     *time.Location
		expected int
	}{
		// Author: 2019-12-31 23:00 EST stays 2019 in its own zone.
		{name: "author", source: DateSourceAuthor, expected: 2019},
		// Committer: 2020-01-01 03:00 IST is 2019-12-31 21:30 UTC.
		{name: "committer default zone", source: DateSourceCommitter, expected: 2019},
		{name: "committer override", source: DateSourceCommitter, zone: ist, expected: 2020},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewLookupConfig(tt.source, tt.zone, 10, BackendGoGit)
			if err != nil {
				t.Fatalf("NewLookupConfig: %v", err)
			}
			ts := newTimestampFunc(cfg)(commit)
			if got := ts.Year(); got != tt.expected {
				t.Errorf("Year() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestTimestamp_YearNilZone(t *testing.T) {
	ts := Timestamp{Instant: time.Date(2000, time.January, 1, 0, 30, 0, 0, time.FixedZone("", 3600))}
	if got := ts.Year(); got != 1999 {
		t.Errorf("Year() = %d, expected 1999", got)
	}
}

func TestRapidTimestamp_YearMatchesCalendar(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		secs := rapid.Int64Range(0, 4102444800).Draw(t, "secs") // 1970..2100
		offset := rapid.IntRange(-14*60, 14*60).Draw(t, "offsetMinutes")
		zone := time.FixedZone("", offset*60)
		instant := time.Unix(secs, 0)

		ts := Timestamp{Instant: instant, Zone: zone}
		y := ts.Year()

		start := time.Date(y, time.January, 1, 0, 0, 0, 0, zone)
		end := time.Date(y+1, time.January, 1, 0, 0, 0, 0, zone)
		if instant.Before(start) || !instant.Before(end) {
			t.Fatalf("instant %v not within year %d in zone %v", instant, y, zone)
		}
	})
}

func TestRapidTimestamp_AuthorIgnoresCommitter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(0, 4102444800).Draw(t, "author")
		c := rapid.Int64Range(0, 4102444800).Draw(t, "committer")
		offset := rapid.IntRange(-12, 14).Draw(t, "offsetHours")
		zone := time.FixedZone("", offset*3600)

		commit := CommitRecord{
			Author:    Identity{When: time.Unix(a, 0).In(zone)},
			Committer: Identity{When: time.Unix(c, 0)},
		}
		cfg, err := NewLookupConfig(DateSourceAuthor, nil, 10, BackendGoGit)
		if err != nil {
			t.Fatalf("NewLookupConfig: %v", err)
		}
		got := newTimestampFunc(cfg)(commit).Year()
		if expected := time.Unix(a, 0).In(zone).Year(); got != expected {
			t.Fatalf("Year() = %d, expected %d", got, expected)
		}
	})
}

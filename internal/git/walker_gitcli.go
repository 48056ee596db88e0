package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Each commit header is prefixed by 0x1e (record separator), carries
// NUL-separated fields and ends with a newline, so the combined --raw -z
// output can be split into per-commit records on 0x1e.
const gitLogFormat = "%x1e%H%x00%T%x00%P%x00%an%x00%ae%x00%aI%x00%cn%x00%ce%x00%cI%n"

const gitLogFields = 9

// Walk runs one bounded `git log` from HEAD. --max-count bounds visited commits
// because no pathspec is given; -c limits merge entries to paths that differ
// from all parents and --root lists the files of a root commit.
func (b *gitCLIBackend) Walk(ctx context.Context, path string, maxCommits int) (HistoryWalker, error) {
	if err := b.verifyHead(ctx); err != nil {
		return nil, err
	}

	args := []string{
		"log",
		"--no-color",
		"--no-renames",
		"--no-abbrev",
		"--max-count=" + strconv.Itoa(maxCommits),
		"--pretty=format:" + gitLogFormat,
		"--raw", "-z", "-c", "--root",
		"HEAD", "--",
	}
	out, err := runGit(ctx, b.root, args...)
	if err != nil {
		return nil, stateError("git log", err)
	}

	return &gitLogWalker{records: bytes.Split(out, []byte{0x1e}), path: path}, nil
}

// gitLogWalker parses one `git log` record per step and yields those whose raw
// entries name the path.
type gitLogWalker struct {
	records [][]byte
	next    int
	path    string
	visited int
}

// Next returns the next commit that changed the path, or io.EOF.
func (w *gitLogWalker) Next() (*CommitRecord, error) {
	for w.next < len(w.records) {
		rec := w.records[w.next]
		w.next++
		if len(bytes.TrimLeft(rec, "\n\x00")) == 0 {
			continue
		}
		w.visited++

		commit, paths, err := parseGitLogRecord(rec)
		if err != nil {
			return nil, stateError("parse git log output", err)
		}
		for _, p := range paths {
			if p == w.path {
				return &commit, nil
			}
		}
	}
	return nil, io.EOF
}

// Visited returns how many commit records the walk has consumed so far.
func (w *gitLogWalker) Visited() int {
	return w.visited
}

// Close drops the buffered output.
func (w *gitLogWalker) Close() error {
	w.records = nil
	w.next = 0
	return nil
}

func parseGitLogRecord(rec []byte) (CommitRecord, []string, error) {
	header, body := splitHeaderBody(bytes.TrimLeft(rec, "\n\x00"))

	fields := bytes.SplitN(header, []byte{0x00}, gitLogFields)
	if len(fields) < gitLogFields {
		return CommitRecord{}, nil, fmt.Errorf("unexpected git log header format")
	}

	authorWhen, err := time.Parse(time.RFC3339, string(fields[5]))
	if err != nil {
		return CommitRecord{}, nil, fmt.Errorf("parse author date: %w", err)
	}
	committerWhen, err := time.Parse(time.RFC3339, string(fields[8]))
	if err != nil {
		return CommitRecord{}, nil, fmt.Errorf("parse committer date: %w", err)
	}

	commit := CommitRecord{
		Hash:      string(fields[0]),
		Tree:      string(fields[1]),
		Parents:   strings.Fields(string(fields[2])),
		Author:    Identity{Name: string(fields[3]), Email: string(fields[4]), When: authorWhen},
		Committer: Identity{Name: string(fields[6]), Email: string(fields[7]), When: committerWhen},
	}

	paths, _, err := parseGitRawPaths(body)
	if err != nil {
		return CommitRecord{}, nil, err
	}
	return commit, paths, nil
}

func splitHeaderBody(rec []byte) (header []byte, body []byte) {
	// The pretty line is followed by '\n', then diff output.
	if idx := bytes.IndexByte(rec, '\n'); idx != -1 {
		return rec[:idx], rec[idx+1:]
	}
	return rec, nil
}

// parseGitRawPaths reads the paths of --raw -z entries. Plain entries start
// with one ':' and combined (-c) merge entries with one ':' per parent:
//
//	:100644 100644 aaa bbb M\0path\0
//	::100644 100644 100644 aaa bbb ccc MM\0path\0
//
// Renames never appear because the log runs with --no-renames.
func parseGitRawPaths(body []byte) ([]string, int, error) {
	i := 0
	for i < len(body) && (body[i] == '\n' || body[i] == '\r' || body[i] == 0) {
		i++
	}

	paths := make([]string, 0, 16)

	for i < len(body) && body[i] == ':' {
		meta, ok := readUntilNUL(body, &i)
		if !ok {
			return nil, 0, fmt.Errorf("unexpected git --raw format (missing NUL)")
		}

		// modes for each parent and the result, as many hashes, then the status
		parents := len(meta) - len(bytes.TrimLeft(meta, ":"))
		fields := strings.Fields(string(meta[parents:]))
		if len(fields) != 2*(parents+1)+1 {
			return nil, 0, fmt.Errorf("unexpected git --raw meta: %q", string(meta))
		}

		path, ok := readStringUntilNUL(body, &i)
		if !ok {
			return nil, 0, fmt.Errorf("unexpected git --raw format (missing path)")
		}
		paths = append(paths, path)
	}

	return paths, i, nil
}

func readUntilNUL(b []byte, i *int) ([]byte, bool) {
	if *i >= len(b) {
		return nil, false
	}
	j := bytes.IndexByte(b[*i:], 0)
	if j == -1 {
		return nil, false
	}
	start := *i
	end := *i + j
	*i = end + 1
	return b[start:end], true
}

func readStringUntilNUL(b []byte, i *int) (string, bool) {
	raw, ok := readUntilNUL(b, i)
	if !ok {
		return "", false
	}
	return string(raw), true
}

package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// runGit executes git in dir and returns its raw stdout.
// Pathspecs are always taken literally. Stderr is folded into the returned error.
func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	full := append([]string{"--literal-pathspecs", "-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, fmt.Errorf("git not found: ensure git is installed and in PATH: %w", err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("git %s failed: %w", args[0], err)
		}
		return nil, fmt.Errorf("git %s failed: %w: %s", args[0], err, msg)
	}
	return stdout.Bytes(), nil
}

// verifyHead fails with ErrRepositoryState when HEAD does not name a commit.
func (b *gitCLIBackend) verifyHead(ctx context.Context) error {
	if _, err := runGit(ctx, b.root, "rev-parse", "--verify", "--quiet", "HEAD^{commit}"); err != nil {
		return stateError("HEAD does not point to a commit", err)
	}
	return nil
}

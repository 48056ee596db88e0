package git

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a lookup is built with invalid options.
	ErrConfiguration = errors.New("invalid lookup configuration")

	// ErrPathOutsideRepository is returned when a file is not under the work tree root.
	ErrPathOutsideRepository = errors.New("path is outside the repository")

	// ErrRepositoryState is returned when the repository cannot answer a query:
	// no HEAD, a broken object store, or a failing git executable.
	ErrRepositoryState = errors.New("unusable repository state")
)

// PathOutsideRepositoryError reports which path escaped which root.
type PathOutsideRepositoryError struct {
	Path string
	Root string
}

func (e *PathOutsideRepositoryError) Error() string {
	return fmt.Sprintf("%s: %q is not under %q", ErrPathOutsideRepository, e.Path, e.Root)
}

// Is makes errors.Is(err, ErrPathOutsideRepository) match.
func (e *PathOutsideRepositoryError) Is(target error) bool {
	return target == ErrPathOutsideRepository
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func stateError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrRepositoryState, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrRepositoryState, msg, err)
}

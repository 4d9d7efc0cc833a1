// Package git provides sentinel errors for repository and diff operations.
// All errors can be checked using errors.Is() for programmatic handling.
package git

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers,
// so a different object-store backend can be substituted without changing the
// public error contract.

// ErrNotRepository is returned when repository discovery or opening fails
// because no repository exists at (or above) the requested location.
var ErrNotRepository = errors.New("repository not found")

// ErrConfigInvalid is returned when a configuration layer is malformed
// or cannot be read.
var ErrConfigInvalid = errors.New("invalid configuration")

// ErrRevisionNotFound is returned when a revision specification does not
// resolve to any object in the repository.
var ErrRevisionNotFound = errors.New("revision not found")

// ErrObjectNotFound is returned when a resolved object id does not
// correspond to a commit or tree in the object store.
var ErrObjectNotFound = errors.New("object not found")

// ErrDiffFailed is returned when the tree diff computation fails in the
// backend (e.g., an unreadable or corrupted object).
var ErrDiffFailed = errors.New("diff computation failed")

// ErrInvalidRef is returned when a reference name, revision specification,
// or option value is malformed.
var ErrInvalidRef = errors.New("invalid reference")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the fiche store could not be reached; the
	// submission is aborted before anything is rendered.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrRenderFailure means the PDF could not be produced. The stored row is
	// kept, nothing is delivered.
	ErrRenderFailure = errors.New("render failure")

	// ErrNotFound is returned for unknown document filenames.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the first offending field of a bad submission.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing field: %s", e.Field)
}

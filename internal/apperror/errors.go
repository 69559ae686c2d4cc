// Package apperror holds the sentinel and typed errors shared across the planner.
// Extraction misses are never errors: they show up as zero values in a ParseResult.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrPatternNotFound is returned by a pattern store when no learning state exists for a user.
	ErrPatternNotFound = errors.New("user pattern not found")

	// ErrVersionConflict is returned when a save is based on a stale pattern version.
	ErrVersionConflict = errors.New("user pattern version conflict")

	// ErrCorruptPattern marks stored learning state that cannot be used.
	ErrCorruptPattern = errors.New("user pattern is corrupt")
)

// PersistenceError wraps a failure of a pattern store.
type PersistenceError struct {
	Backend string
	Op      string
	UserID  string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s for user '%s' failed: %v", e.Backend, e.Op, e.UserID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// RecognitionError reports a speech provider failure during a dictation session.
// It is always propagated to the caller and never retried.
type RecognitionError struct {
	SessionID string
	Code      string
	Err       error
}

func (e *RecognitionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("speech recognition failed in session %s (%s): %v", e.SessionID, e.Code, e.Err)
	}
	return fmt.Sprintf("speech recognition failed in session %s: %v", e.SessionID, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that does not match the expected layout.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

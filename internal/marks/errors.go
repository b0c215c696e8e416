package marks

import "errors"

var (
	// ErrValidation is returned when a mark is built from invalid values
	ErrValidation = errors.New("invalid mark")

	// ErrMismatchedInterview is returned when a mark belongs to another interview
	ErrMismatchedInterview = errors.New("mark belongs to a different interview")

	// ErrOverlap is returned when a closed mark collides with another closed mark
	ErrOverlap = errors.New("mark overlaps an existing mark")

	// ErrNotFound is returned when no mark exists for a question id
	ErrNotFound = errors.New("mark not found")

	// ErrAlreadyClosed is returned when closing a mark that already has an end
	ErrAlreadyClosed = errors.New("mark already closed")

	// ErrSchema is returned when a marks file cannot be imported
	ErrSchema = errors.New("invalid marks file")
)

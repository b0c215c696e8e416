package fragments

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a fragment is built from an open mark
	ErrValidation = errors.New("invalid fragment")

	// ErrSourceNotFound is returned when the recording to cut from is missing
	ErrSourceNotFound = errors.New("source video not found")

	// ErrAlreadyGenerated is returned by a second cut of the same fragment
	ErrAlreadyGenerated = errors.New("fragment already generated")

	// ErrInvalidRange is returned when start is not strictly before a finite end
	ErrInvalidRange = errors.New("fragment start must be before its end")

	// ErrCutFailed is matched by every CutError
	ErrCutFailed = errors.New("fragment cut failed")
)

// CutError carries the output of a failed tool invocation
type CutError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *CutError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("cutting %s: %v: %s", e.Path, e.Err, e.Stderr)
	}
	return fmt.Sprintf("cutting %s: %v", e.Path, e.Err)
}

func (e *CutError) Unwrap() error {
	return e.Err
}

// Is makes every CutError match ErrCutFailed
func (e *CutError) Is(target error) bool {
	return target == ErrCutFailed
}

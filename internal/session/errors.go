package session

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called more than once
	ErrAlreadyStarted = errors.New("interview already started")

	// ErrNotRecording is returned when an operation needs a running recording
	ErrNotRecording = errors.New("interview is not recording")

	// ErrCaptureFailed wraps failures of the capture device on start
	ErrCaptureFailed = errors.New("could not start recording")
)

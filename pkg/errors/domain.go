package errors

import (
	stderrors "errors"

	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/killallgit/interviewcut/internal/services/sessions"
	"github.com/killallgit/interviewcut/internal/session"
)

type domainMapping struct {
	target error
	code   ErrorCode
}

// Order matters: the first matching sentinel wins.
var domainMappings = []domainMapping{
	{marks.ErrValidation, ErrCodeValidation},
	{marks.ErrSchema, ErrCodeInvalidInput},
	{fragments.ErrValidation, ErrCodeValidation},
	{fragments.ErrInvalidRange, ErrCodeValidation},
	{questions.ErrEmptyQuestion, ErrCodeValidation},
	{questions.ErrUnsupportedFile, ErrCodeInvalidInput},
	{jobs.ErrInvalidRequest, ErrCodeInvalidInput},

	{marks.ErrNotFound, ErrCodeNotFound},
	{fragments.ErrSourceNotFound, ErrCodeNotFound},
	{questions.ErrCategoryNotFound, ErrCodeNotFound},
	{questions.ErrQuestionNotFound, ErrCodeNotFound},
	{sessions.ErrSessionNotFound, ErrCodeNotFound},
	{jobs.ErrJobNotFound, ErrCodeNotFound},
	{history.ErrInterviewNotFound, ErrCodeNotFound},

	{marks.ErrOverlap, ErrCodeOverlap},
	{marks.ErrMismatchedInterview, ErrCodeConflict},
	{marks.ErrAlreadyClosed, ErrCodeInvalidState},
	{session.ErrAlreadyStarted, ErrCodeInvalidState},
	{session.ErrNotRecording, ErrCodeInvalidState},
	{fragments.ErrAlreadyGenerated, ErrCodeInvalidState},
	{sessions.ErrSessionExists, ErrCodeAlreadyExists},
	{sessions.ErrSessionBusy, ErrCodeInvalidState},
	{sessions.ErrSessionActive, ErrCodeInvalidState},

	{fragments.ErrCutFailed, ErrCodeFragmentFailure},
	{session.ErrCaptureFailed, ErrCodeExternalService},
}

// FromDomain converts an error returned by the interview packages into an
// AppError. AppErrors pass through unchanged; unknown errors become internal.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	for _, m := range domainMappings {
		if stderrors.Is(err, m.target) {
			return Wrap(err, m.code, err.Error())
		}
	}
	return New(ErrCodeInternal, "internal error").WithCause(err)
}

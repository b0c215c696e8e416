package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/killallgit/interviewcut/internal/services/sessions"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     ErrorCode
		httpCode int
	}{
		{"mark validation", fmt.Errorf("%w: bad", marks.ErrValidation), ErrCodeValidation, http.StatusBadRequest},
		{"schema", fmt.Errorf("%w: missing key", marks.ErrSchema), ErrCodeInvalidInput, http.StatusBadRequest},
		{"invalid range", fragments.ErrInvalidRange, ErrCodeValidation, http.StatusBadRequest},
		{"mark not found", fmt.Errorf("%w: question 3", marks.ErrNotFound), ErrCodeNotFound, http.StatusNotFound},
		{"source not found", fragments.ErrSourceNotFound, ErrCodeNotFound, http.StatusNotFound},
		{"overlap", marks.ErrOverlap, ErrCodeOverlap, http.StatusConflict},
		{"already closed", marks.ErrAlreadyClosed, ErrCodeInvalidState, http.StatusConflict},
		{"mismatch", marks.ErrMismatchedInterview, ErrCodeConflict, http.StatusConflict},
		{"already started", session.ErrAlreadyStarted, ErrCodeInvalidState, http.StatusConflict},
		{"not recording", session.ErrNotRecording, ErrCodeInvalidState, http.StatusConflict},
		{"already generated", fragments.ErrAlreadyGenerated, ErrCodeInvalidState, http.StatusConflict},
		{"cut failed", &fragments.CutError{Path: "x.mp4", Err: stderrors.New("exit 1")}, ErrCodeFragmentFailure, http.StatusBadGateway},
		{"session missing", fmt.Errorf("%w: x", sessions.ErrSessionNotFound), ErrCodeNotFound, http.StatusNotFound},
		{"session exists", sessions.ErrSessionExists, ErrCodeAlreadyExists, http.StatusConflict},
		{"session stopping", sessions.ErrSessionBusy, ErrCodeInvalidState, http.StatusConflict},
		{"job missing", jobs.ErrJobNotFound, ErrCodeNotFound, http.StatusNotFound},
		{"bad job request", fmt.Errorf("%w: marks_path", jobs.ErrInvalidRequest), ErrCodeInvalidInput, http.StatusBadRequest},
		{"interview missing", history.ErrInterviewNotFound, ErrCodeNotFound, http.StatusNotFound},
		{"unknown", stderrors.New("boom"), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.httpCode, appErr.GetHTTPCode())
			assert.True(t, stderrors.Is(appErr, tt.err), "cause must stay reachable")
		})
	}
}

func TestFromDomainPassThrough(t *testing.T) {
	assert.Nil(t, FromDomain(nil))

	original := NotFound("session", "abc")
	wrapped := fmt.Errorf("loading: %w", original)
	assert.Same(t, original, FromDomain(wrapped))
}

func TestHelpersUnwrap(t *testing.T) {
	err := fmt.Errorf("context: %w", ValidationError("question_id", "must be positive"))

	assert.True(t, Is(err, ErrCodeValidation))
	assert.Equal(t, ErrCodeValidation, GetCode(err))
	assert.Equal(t, http.StatusBadRequest, GetHTTPCode(err))

	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(stderrors.New("plain")))
}

func TestAppErrorDetails(t *testing.T) {
	err := RateLimitError("api", "120/min")
	assert.Equal(t, http.StatusTooManyRequests, err.GetHTTPCode())
	assert.Equal(t, "api", err.Details["resource"])
	assert.Contains(t, err.Error(), "API_RATE_LIMIT")
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("sql: database is closed")

	dbErr := DatabaseError("list jobs", cause)
	assert.Equal(t, ErrCodeDatabaseQuery, dbErr.Code)
	assert.Equal(t, "database list jobs failed", dbErr.Message)
	assert.Equal(t, http.StatusInternalServerError, dbErr.GetHTTPCode())
	assert.ErrorIs(t, dbErr, cause)

	missing := MissingFieldError("marksPath").WithCause(cause)
	assert.Equal(t, http.StatusBadRequest, missing.GetHTTPCode())
	assert.Equal(t, "marksPath", missing.Details["field"])
	assert.ErrorIs(t, missing, cause)

	notFound := NotFound("session", "2026-10-18_001")
	assert.Equal(t, "session not found", notFound.Message)
	assert.Nil(t, notFound.Unwrap())
}

func TestFromDomainKeepsUnknownCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	appErr := FromDomain(fmt.Errorf("saving: %w", cause))

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, "internal error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

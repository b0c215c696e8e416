package types

import (
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/services/sessions"
)

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusQueued     = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// SessionResponse for a single live session
type SessionResponse struct {
	BaseResponse
	Session sessions.Info `json:"session"`
}

// SessionsResponse for the list of live sessions
type SessionsResponse struct {
	BaseResponse
	Sessions []sessions.Info `json:"sessions"`
	Count    int             `json:"count"`
}

// QuestionStartedResponse for a newly opened mark
type QuestionStartedResponse struct {
	BaseResponse
	InterviewID string `json:"interviewId"`
	QuestionID  int    `json:"questionId"`
}

// MarksResponse for the current marks snapshot of a session
type MarksResponse struct {
	BaseResponse
	Marks marks.Document `json:"marks"`
}

// InterviewsResponse for the interview history
type InterviewsResponse struct {
	BaseResponse
	Interviews []Interview `json:"interviews"`
	Count      int         `json:"count"`           // Number of results in this response
	Total      int64       `json:"total,omitempty"` // Total stored interviews
	Offset     int         `json:"offset,omitempty"`
}

// InterviewResponse for one interview with its fragments
type InterviewResponse struct {
	BaseResponse
	Interview *Interview `json:"interview"`
}

// JobResponse for a background fragment batch
type JobResponse struct {
	BaseResponse
	Job *Job `json:"job"`
}

// JobsResponse for a list of background jobs
type JobsResponse struct {
	BaseResponse
	Jobs  []Job `json:"jobs"`
	Count int   `json:"count"`
}

// QuestionsResponse for the question catalog
type QuestionsResponse struct {
	BaseResponse
	Categories []QuestionCategory `json:"categories"`
	Total      int                `json:"total"` // Questions across all categories
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}

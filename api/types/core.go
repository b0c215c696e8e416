package types

import "time"

// Core data types used across API responses

// Interview is a recorded interview from the history
type Interview struct {
	ID                string     `json:"id"` // Interview id, YYYY-MM-DD_NNN by default
	UUID              string     `json:"uuid"`
	StartedAt         time.Time  `json:"startedAt"`
	StoppedAt         time.Time  `json:"stoppedAt"`
	RecordingDuration float64    `json:"recordingDuration"` // Seconds
	QuestionsClosed   int        `json:"questionsClosed"`
	Succeeded         int        `json:"succeeded"`
	Total             int        `json:"total"`
	Summary           string     `json:"summary" example:"3/4 completed"`
	VideoPath         string     `json:"videoPath,omitempty"`
	MarksPath         string     `json:"marksPath,omitempty"`
	ReportPath        string     `json:"reportPath,omitempty"`
	FragmentsDir      string     `json:"fragmentsDir,omitempty"`
	CaptureError      string     `json:"captureError,omitempty"`
	Fragments         []Fragment `json:"fragments,omitempty"`
}

// Fragment is the outcome of cutting one question
type Fragment struct {
	QuestionID int      `json:"questionId"`
	Start      float64  `json:"start"`
	End        *float64 `json:"end,omitempty"` // Absent for marks that were never closed
	Duration   float64  `json:"duration"`
	Status     string   `json:"status"` // succeeded, failed or skipped
	OutputPath string   `json:"outputPath,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Job is a background fragment batch
type Job struct {
	ID           uint                   `json:"id"`
	Type         string                 `json:"type"`
	Status       string                 `json:"status"` // pending, processing, completed, failed, permanently_failed
	Progress     int                    `json:"progress"`
	InterviewID  string                 `json:"interviewId,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	Summary      string                 `json:"summary,omitempty"`
	Fragments    []Fragment             `json:"fragments,omitempty"`
	Error        string                 `json:"error,omitempty"`
	ErrorType    string                 `json:"errorType,omitempty"`
	ErrorCode    string                 `json:"errorCode,omitempty"`
	ErrorDetails string                 `json:"errorDetails,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	StartedAt    *time.Time             `json:"startedAt,omitempty"`
	CompletedAt  *time.Time             `json:"completedAt,omitempty"`
}

// QuestionCategory is one category of the question catalog
type QuestionCategory struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

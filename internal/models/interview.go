package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fragment status constants, matching the batch item statuses
const (
	FragmentStatusSucceeded = "succeeded"
	FragmentStatusFailed    = "failed"
	FragmentStatusSkipped   = "skipped"
)

// InterviewRecord is the persisted outcome of a completed interview session
type InterviewRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InterviewID string    `json:"interview_id" gorm:"uniqueIndex;not null;size:100"`
	StartedAt   time.Time `json:"started_at"`
	StoppedAt   time.Time `json:"stopped_at"`

	// Seconds
	RecordingDuration float64 `json:"recording_duration"`

	QuestionsClosed int `json:"questions_closed"`
	Succeeded       int `json:"succeeded"`
	Total           int `json:"total"`

	VideoPath    string `json:"video_path" gorm:"size:500"`
	MarksPath    string `json:"marks_path" gorm:"size:500"`
	ReportPath   string `json:"report_path" gorm:"size:500"`
	FragmentsDir string `json:"fragments_dir" gorm:"size:500"`
	CaptureError string `json:"capture_error,omitempty" gorm:"size:500"`

	Fragments []FragmentRecord `json:"fragments,omitempty" gorm:"foreignKey:InterviewRecordID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate generates a UUID before creating a new interview record
func (r *InterviewRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the InterviewRecord model
func (InterviewRecord) TableName() string {
	return "interviews"
}

// Completed reports whether every attempted fragment was generated
func (r *InterviewRecord) Completed() bool {
	return r.Succeeded == r.Total
}

// FragmentRecord is one question's fragment outcome within an interview
type FragmentRecord struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UUID              string    `json:"uuid" gorm:"uniqueIndex;not null"`
	CreatedAt         time.Time `json:"created_at"`
	InterviewRecordID uint      `json:"-" gorm:"not null;index"`

	QuestionID int      `json:"question_id" gorm:"not null"`
	Start      float64  `json:"start"`
	End        *float64 `json:"end,omitempty"`
	Status     string   `json:"status" gorm:"size:20;index"`
	OutputPath string   `json:"output_path,omitempty" gorm:"size:500"`
	Error      string   `json:"error,omitempty" gorm:"size:1000"`
}

// BeforeCreate generates a UUID before creating a new fragment record
func (f *FragmentRecord) BeforeCreate(tx *gorm.DB) error {
	if f.UUID == "" {
		f.UUID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = FragmentStatusSkipped
	}
	return nil
}

// TableName returns the table name for the FragmentRecord model
func (FragmentRecord) TableName() string {
	return "interview_fragments"
}

// Duration returns the fragment length in seconds, zero when it has no end
func (f *FragmentRecord) Duration() float64 {
	if f.End == nil {
		return 0
	}
	return *f.End - f.Start
}

package jobs

import (
	"context"
	"time"

	"github.com/killallgit/interviewcut/internal/models"
)

// Service defines the business logic interface for job operations
type Service interface {
	// Enqueue operations
	EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, opts ...JobOption) (*models.Job, error)
	EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string, opts ...JobOption) (*models.Job, error)
	EnqueueFragmentBatch(ctx context.Context, req FragmentBatchRequest, opts ...JobOption) (*models.Job, error)

	// Status and retrieval
	GetJob(ctx context.Context, jobID uint) (*models.Job, error)
	GetJobStatus(ctx context.Context, jobID uint) (models.JobStatus, error)
	ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error)

	// Worker operations (used by worker pool)
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID uint, progress int) error
	CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error
	FailJob(ctx context.Context, jobID uint, err error) error
	ReleaseJob(ctx context.Context, jobID uint) error

	// Maintenance
	CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error)
}

// FragmentBatchRequest describes one background cut of an interview's marks
type FragmentBatchRequest struct {
	InterviewID string `json:"interview_id"`
	MarksPath   string `json:"marks_path" binding:"required"`
	SourcePath  string `json:"source_path" binding:"required"`
	OutputDir   string `json:"output_dir" binding:"required"`
	FragmentExt string `json:"fragment_ext,omitempty" binding:"omitempty,alphanum"`
}

// Payload converts the request to a job payload
func (r FragmentBatchRequest) Payload() models.JobPayload {
	p := models.JobPayload{
		models.PayloadMarksPath:  r.MarksPath,
		models.PayloadSourcePath: r.SourcePath,
		models.PayloadOutputDir:  r.OutputDir,
	}
	if r.FragmentExt != "" {
		p[models.PayloadFragmentExt] = r.FragmentExt
	}
	return p
}

// JobOption is a functional option for configuring jobs
type JobOption func(*jobConfig)

// jobConfig holds configuration for a job
type jobConfig struct {
	Priority    int
	MaxRetries  int
	InterviewID string
}

// WithPriority sets the priority of a job (higher = more priority)
func WithPriority(priority int) JobOption {
	return func(cfg *jobConfig) {
		cfg.Priority = priority
	}
}

// WithMaxRetries sets the maximum number of retries for a job
func WithMaxRetries(retries int) JobOption {
	return func(cfg *jobConfig) {
		cfg.MaxRetries = retries
	}
}

// WithInterviewID links the job to an interview
func WithInterviewID(id string) JobOption {
	return func(cfg *jobConfig) {
		cfg.InterviewID = id
	}
}

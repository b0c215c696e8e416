package jobs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxRetries is zero: a failed batch is reported, not repeated
	DefaultMaxRetries = 0
	DefaultPriority   = 0
)

type service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a job service. A nil logger discards output.
func NewService(repo Repository, logger logrus.FieldLogger) Service {
	return &service{
		repo:   repo,
		logger: logging.OrDiscard(logger).WithField("component", "jobs"),
	}
}

func (s *service) EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, opts ...JobOption) (*models.Job, error) {
	cfg := &jobConfig{
		Priority:   DefaultPriority,
		MaxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	job := &models.Job{
		Type:        jobType,
		Status:      models.JobStatusPending,
		Payload:     payload,
		Priority:    cfg.Priority,
		MaxRetries:  cfg.MaxRetries,
		InterviewID: cfg.InterviewID,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"type":     jobType,
		"priority": job.Priority,
	}).Debug("job enqueued")

	return job, nil
}

func (s *service) EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string, opts ...JobOption) (*models.Job, error) {
	uniqueValue, ok := payload[uniqueKey]
	if !ok {
		return nil, fmt.Errorf("unique key %s not found in payload", uniqueKey)
	}

	existing, err := s.repo.GetJobByTypeAndPayload(ctx, jobType, uniqueKey, fmt.Sprintf("%v", uniqueValue))
	if err != nil && !errors.Is(err, ErrJobNotFound) {
		return nil, err
	}
	if existing != nil && !existing.IsTerminal() {
		s.logger.WithFields(logrus.Fields{
			"job_id": existing.ID,
			"status": existing.Status,
			"key":    uniqueKey,
		}).Debug("job already queued")
		return existing, nil
	}

	return s.EnqueueJob(ctx, jobType, payload, opts...)
}

// EnqueueFragmentBatch queues a cut of every closed mark in a marks file.
// A pending or running batch for the same marks file is returned instead.
func (s *service) EnqueueFragmentBatch(ctx context.Context, req FragmentBatchRequest, opts ...JobOption) (*models.Job, error) {
	if req.MarksPath == "" || req.SourcePath == "" || req.OutputDir == "" {
		return nil, fmt.Errorf("%w: marks_path, source_path and output_dir are required", ErrInvalidRequest)
	}
	req.MarksPath = filepath.Clean(req.MarksPath)

	if req.InterviewID != "" {
		opts = append(opts, WithInterviewID(req.InterviewID))
	}
	return s.EnqueueUniqueJob(ctx, models.JobTypeFragmentBatch, req.Payload(), models.PayloadMarksPath, opts...)
}

func (s *service) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

func (s *service) GetJobStatus(ctx context.Context, jobID uint) (models.JobStatus, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	return job.Status, nil
}

func (s *service) ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error) {
	return s.repo.GetJobsByStatus(ctx, status, limit)
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error) {
	job, err := s.repo.ClaimNextJob(ctx, workerID, jobTypes)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) || errors.Is(err, ErrJobAlreadyClaimed) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming job: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"job_id": job.ID,
		"worker": workerID,
		"type":   job.Type,
	}).Debug("job claimed")

	return job, nil
}

func (s *service) UpdateProgress(ctx context.Context, jobID uint, progress int) error {
	if err := s.repo.UpdateJobProgress(ctx, jobID, progress); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("updating job progress: %w", err)
	}
	return nil
}

func (s *service) CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error {
	if err := s.repo.CompleteJob(ctx, jobID, result); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("completing job: %w", err)
	}

	s.logger.WithField("job_id", jobID).Info("job completed")
	return nil
}

// FailJob records err on the job. StructuredJobErrors keep their
// classification; anything else is a system error.
func (s *service) FailJob(ctx context.Context, jobID uint, err error) error {
	errType, code, details := models.ErrorTypeSystem, "", ""

	var structured *models.StructuredJobError
	if errors.As(err, &structured) {
		errType, code, details = structured.Type, structured.Code, structured.Details
	}

	if ferr := s.repo.FailJobWithDetails(ctx, jobID, errType, code, err.Error(), details); ferr != nil {
		if errors.Is(ferr, ErrJobNotFound) {
			return ferr
		}
		return fmt.Errorf("failing job: %w", ferr)
	}

	entry := s.logger.WithFields(logrus.Fields{
		"job_id":     jobID,
		"error_type": errType,
		"error_code": code,
	}).WithError(err)

	job, _ := s.repo.GetJob(ctx, jobID)
	if job != nil && job.IsRetryable() {
		entry.Warnf("job failed (retry %d/%d)", job.RetryCount, job.MaxRetries)
	} else {
		entry.Error("job failed permanently")
	}

	return nil
}

func (s *service) ReleaseJob(ctx context.Context, jobID uint) error {
	if err := s.repo.ReleaseJob(ctx, jobID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("releasing job: %w", err)
	}

	s.logger.WithField("job_id", jobID).Debug("job released back to pending")
	return nil
}

func (s *service) CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive")
	}

	deleted, err := s.repo.DeleteOldJobs(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("cleaning up old jobs: %w", err)
	}

	if deleted > 0 {
		s.logger.WithField("deleted", deleted).Info("old jobs removed")
	}

	return deleted, nil
}

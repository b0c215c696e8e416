package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/sirupsen/logrus"
)

// Service records finished interviews and the fragments cut from them
type Service struct {
	repo   *Repository
	logger logrus.FieldLogger
}

var _ session.HistoryRecorder = (*Service)(nil)

func NewService(repo *Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logging.OrDiscard(logger).WithField("component", "history"),
	}
}

// RecordSession stores the summary of a stopped session
func (s *Service) RecordSession(ctx context.Context, summary session.Summary) error {
	rec := &models.InterviewRecord{
		InterviewID:       summary.InterviewID,
		StartedAt:         summary.StartedAt,
		StoppedAt:         summary.StoppedAt,
		RecordingDuration: summary.RecordingDuration,
		QuestionsClosed:   summary.QuestionsClosed,
		Succeeded:         summary.Succeeded,
		Total:             summary.Total,
		VideoPath:         summary.VideoPath,
		MarksPath:         summary.MarksPath,
		ReportPath:        summary.ReportPath,
		FragmentsDir:      summary.FragmentsDir,
		CaptureError:      summary.CaptureError,
		Fragments:         fragmentRecords(summary.Items),
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"interview_id": rec.InterviewID,
		"succeeded":    rec.Succeeded,
		"total":        rec.Total,
	}).Debug("interview recorded")
	return nil
}

// RecordBatch stores the outcome of a background batch. An interview
// without a session record gets a minimal one.
func (s *Service) RecordBatch(ctx context.Context, interviewID string, res batch.Result) error {
	if interviewID == "" {
		return fmt.Errorf("interview id is required")
	}

	rec, err := s.repo.Get(ctx, interviewID)
	if err != nil {
		if !errors.Is(err, ErrInterviewNotFound) {
			return err
		}
		rec = &models.InterviewRecord{InterviewID: interviewID, QuestionsClosed: res.Total}
	}

	rec.Succeeded = res.Succeeded
	rec.Total = res.Total
	rec.Fragments = fragmentRecords(res.Items)

	return s.repo.Upsert(ctx, rec)
}

// Get returns one interview with its fragments
func (s *Service) Get(ctx context.Context, interviewID string) (*models.InterviewRecord, error) {
	return s.repo.Get(ctx, interviewID)
}

// List returns a page of interviews, newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.InterviewRecord, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// Delete removes an interview record. Files on disk are left alone.
func (s *Service) Delete(ctx context.Context, interviewID string) error {
	return s.repo.Delete(ctx, interviewID)
}

func fragmentRecords(items []batch.Item) []models.FragmentRecord {
	out := make([]models.FragmentRecord, 0, len(items))
	for _, it := range items {
		f := models.FragmentRecord{
			QuestionID: it.QuestionID,
			Start:      it.Start,
			Status:     string(it.Status),
			OutputPath: it.OutputPath,
			Error:      it.Error,
		}
		if it.Status != batch.StatusSkipped {
			end := it.End
			f.End = &end
		}
		out = append(out, f)
	}
	return out
}

package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/interviewcut/internal/models"
	"gorm.io/gorm"
)

// ErrInterviewNotFound is returned when no record exists for an interview id
var ErrInterviewNotFound = errors.New("interview not found")

// Repository persists interview records and their fragments
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert stores rec, replacing the fragments of an existing record with the same interview id
func (r *Repository) Upsert(ctx context.Context, rec *models.InterviewRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.InterviewRecord
		err := tx.Where("interview_id = ?", rec.InterviewID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("creating interview record: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("finding interview record: %w", err)
		}

		rec.ID = existing.ID
		rec.UUID = existing.UUID
		rec.CreatedAt = existing.CreatedAt

		if err := tx.Where("interview_record_id = ?", existing.ID).Delete(&models.FragmentRecord{}).Error; err != nil {
			return fmt.Errorf("clearing fragments: %w", err)
		}
		fragments := rec.Fragments
		rec.Fragments = nil
		if err := tx.Omit("Fragments").Save(rec).Error; err != nil {
			return fmt.Errorf("updating interview record: %w", err)
		}
		for i := range fragments {
			fragments[i].ID = 0
			fragments[i].InterviewRecordID = rec.ID
		}
		if len(fragments) > 0 {
			if err := tx.Create(&fragments).Error; err != nil {
				return fmt.Errorf("storing fragments: %w", err)
			}
		}
		rec.Fragments = fragments
		return nil
	})
}

// Get returns an interview with its fragments in question order
func (r *Repository) Get(ctx context.Context, interviewID string) (*models.InterviewRecord, error) {
	var rec models.InterviewRecord
	err := r.db.WithContext(ctx).
		Preload("Fragments", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id ASC")
		}).
		Where("interview_id = ?", interviewID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInterviewNotFound, interviewID)
		}
		return nil, fmt.Errorf("getting interview: %w", err)
	}
	return &rec, nil
}

// List returns interviews newest first, without fragments, plus the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.InterviewRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.InterviewRecord{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting interviews: %w", err)
	}

	var recs []models.InterviewRecord
	query := r.db.WithContext(ctx).Order("started_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing interviews: %w", err)
	}
	return recs, total, nil
}

// Delete removes an interview and its fragments
func (r *Repository) Delete(ctx context.Context, interviewID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.InterviewRecord
		if err := tx.Where("interview_id = ?", interviewID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrInterviewNotFound, interviewID)
			}
			return fmt.Errorf("finding interview: %w", err)
		}
		if err := tx.Where("interview_record_id = ?", rec.ID).Delete(&models.FragmentRecord{}).Error; err != nil {
			return fmt.Errorf("deleting fragments: %w", err)
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return fmt.Errorf("deleting interview: %w", err)
		}
		return nil
	})
}

package types

import (
	"fmt"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/internal/services/workers"
)

// FromInterviewRecord transforms a history record to an Interview
func FromInterviewRecord(r *models.InterviewRecord) *Interview {
	if r == nil {
		return nil
	}

	interview := &Interview{
		ID:                r.InterviewID,
		UUID:              r.UUID,
		StartedAt:         r.StartedAt,
		StoppedAt:         r.StoppedAt,
		RecordingDuration: r.RecordingDuration,
		QuestionsClosed:   r.QuestionsClosed,
		Succeeded:         r.Succeeded,
		Total:             r.Total,
		Summary:           fmt.Sprintf("%d/%d completed", r.Succeeded, r.Total),
		VideoPath:         r.VideoPath,
		MarksPath:         r.MarksPath,
		ReportPath:        r.ReportPath,
		FragmentsDir:      r.FragmentsDir,
		CaptureError:      r.CaptureError,
	}
	for _, f := range r.Fragments {
		interview.Fragments = append(interview.Fragments, Fragment{
			QuestionID: f.QuestionID,
			Start:      f.Start,
			End:        f.End,
			Duration:   f.Duration(),
			Status:     f.Status,
			OutputPath: f.OutputPath,
			Error:      f.Error,
		})
	}
	return interview
}

// FromInterviewRecordList transforms records without their fragments
func FromInterviewRecordList(records []models.InterviewRecord) []Interview {
	result := make([]Interview, 0, len(records))
	for i := range records {
		if transformed := FromInterviewRecord(&records[i]); transformed != nil {
			transformed.Fragments = nil
			result = append(result, *transformed)
		}
	}
	return result
}

// FromBatchItems transforms batch items to fragments
func FromBatchItems(items []batch.Item) []Fragment {
	result := make([]Fragment, 0, len(items))
	for _, it := range items {
		f := Fragment{
			QuestionID: it.QuestionID,
			Start:      it.Start,
			Status:     string(it.Status),
			OutputPath: it.OutputPath,
			Error:      it.Error,
		}
		if it.Status != batch.StatusSkipped {
			end := it.End
			f.End = &end
			f.Duration = end - it.Start
		}
		result = append(result, f)
	}
	return result
}

// FromJob transforms a job model. Completed batches carry their fragments.
func FromJob(j *models.Job) *Job {
	if j == nil {
		return nil
	}

	job := &Job{
		ID:           j.ID,
		Type:         string(j.Type),
		Status:       string(j.Status),
		Progress:     j.Progress,
		InterviewID:  j.InterviewID,
		Payload:      j.Payload,
		Error:        j.Error,
		ErrorType:    j.ErrorType,
		ErrorCode:    j.ErrorCode,
		ErrorDetails: j.ErrorDetails,
		CreatedAt:    j.CreatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
	}

	if j.Status == models.JobStatusCompleted && j.Result != nil {
		if res, err := workers.DecodeBatchResult(j.Result); err == nil {
			job.Summary = res.Summary()
			job.Fragments = FromBatchItems(res.Items)
		}
	}
	return job
}

// FromJobList transforms a list of jobs
func FromJobList(jobs []*models.Job) []Job {
	result := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if transformed := FromJob(j); transformed != nil {
			result = append(result, *transformed)
		}
	}
	return result
}

// FromCategories transforms catalog categories
func FromCategories(categories []questions.Category) []QuestionCategory {
	result := make([]QuestionCategory, 0, len(categories))
	for _, c := range categories {
		qs := make([]string, len(c.Questions))
		copy(qs, c.Questions)
		result = append(result, QuestionCategory{Name: c.Name, Questions: qs})
	}
	return result
}

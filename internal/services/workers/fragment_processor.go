package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// BatchRecorder stores the outcome of a background batch for an interview
type BatchRecorder interface {
	RecordBatch(ctx context.Context, interviewID string, res batch.Result) error
}

// FragmentBatchProcessor cuts every closed mark of a marks file in the background
type FragmentBatchProcessor struct {
	jobService jobs.Service
	cutter     batch.Cutter
	fs         afero.Fs
	ext        string
	recorder   BatchRecorder
	logger     logrus.FieldLogger
}

// ProcessorOption configures a FragmentBatchProcessor
type ProcessorOption func(*FragmentBatchProcessor)

// WithProcessorFs sets the filesystem marks files and sources are read from
func WithProcessorFs(fs afero.Fs) ProcessorOption {
	return func(p *FragmentBatchProcessor) { p.fs = fs }
}

// WithDefaultExtension sets the extension used when a job does not name one
func WithDefaultExtension(ext string) ProcessorOption {
	return func(p *FragmentBatchProcessor) {
		if ext != "" {
			p.ext = ext
		}
	}
}

// WithBatchRecorder stores batch results against the interview history
func WithBatchRecorder(r BatchRecorder) ProcessorOption {
	return func(p *FragmentBatchProcessor) { p.recorder = r }
}

// WithProcessorLogger sets the processor logger
func WithProcessorLogger(logger logrus.FieldLogger) ProcessorOption {
	return func(p *FragmentBatchProcessor) { p.logger = logging.OrDiscard(logger) }
}

// NewFragmentBatchProcessor creates a processor for fragment batch jobs
func NewFragmentBatchProcessor(jobService jobs.Service, cutter batch.Cutter, opts ...ProcessorOption) *FragmentBatchProcessor {
	p := &FragmentBatchProcessor{
		jobService: jobService,
		cutter:     cutter,
		fs:         afero.NewOsFs(),
		ext:        fragments.DefaultExt,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *FragmentBatchProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeFragmentBatch
}

func (p *FragmentBatchProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	if !p.CanProcess(job.Type) {
		return fmt.Errorf("unsupported job type: %s", job.Type)
	}

	req, err := parseBatchPayload(job.Payload)
	if err != nil {
		return models.NewJobError(models.ErrorTypeInput, "invalid_payload", "Invalid job payload", err.Error(), err)
	}
	ext := req.FragmentExt
	if ext == "" {
		ext = p.ext
	}

	log := p.logger.WithFields(logrus.Fields{"job_id": job.ID, "marks": req.MarksPath})
	p.progress(ctx, job.ID, 5)

	set, err := marks.Load(p.fs, req.MarksPath, req.MarksPath)
	if err != nil {
		if errors.Is(err, marks.ErrSchema) || errors.Is(err, marks.ErrValidation) {
			return models.NewJobError(models.ErrorTypeInput, "invalid_marks", "Marks file could not be loaded", err.Error(), err)
		}
		return models.NewJobError(models.ErrorTypeSystem, "marks_read", "Failed to read marks file", err.Error(), err)
	}

	exists, err := afero.Exists(p.fs, req.SourcePath)
	if err != nil {
		return models.NewJobError(models.ErrorTypeSystem, "source_stat", "Failed to check source video", err.Error(), err)
	}
	if !exists {
		return models.NewJobError(models.ErrorTypeNotFound, "source_missing",
			fmt.Sprintf("Source video %s not found", req.SourcePath), req.SourcePath, fragments.ErrSourceNotFound)
	}

	runner := batch.NewJob(p.cutter,
		batch.WithLogger(log),
		batch.WithExtension(ext),
		batch.WithProgress(func(done, total int) {
			p.progress(ctx, job.ID, 5+done*90/total)
		}),
	)
	res := runner.Run(ctx, set, req.SourcePath, req.OutputDir)

	if err := ctx.Err(); err != nil {
		return models.NewJobError(models.ErrorTypeSystem, "cancelled", "Batch interrupted", res.Summary(), err)
	}

	interviewID := job.InterviewID
	if interviewID == "" {
		interviewID = set.InterviewID()
	}
	if p.recorder != nil {
		if err := p.recorder.RecordBatch(ctx, interviewID, res); err != nil {
			log.WithError(err).Warn("failed to record batch in history")
		}
	}

	result, err := EncodeBatchResult(res)
	if err != nil {
		return models.NewJobError(models.ErrorTypeSystem, "encode_result", "Failed to encode batch result", err.Error(), err)
	}
	result["interview_id"] = interviewID

	if err := p.jobService.CompleteJob(ctx, job.ID, result); err != nil {
		return fmt.Errorf("completing job: %w", err)
	}

	log.WithFields(logrus.Fields{"succeeded": res.Succeeded, "total": res.Total}).Info(res.Summary())
	return nil
}

func (p *FragmentBatchProcessor) progress(ctx context.Context, jobID uint, pct int) {
	if err := p.jobService.UpdateProgress(ctx, jobID, pct); err != nil {
		p.logger.WithError(err).WithField("job_id", jobID).Debug("failed to update job progress")
	}
}

func parseBatchPayload(payload models.JobPayload) (jobs.FragmentBatchRequest, error) {
	var req jobs.FragmentBatchRequest
	job := models.Job{Payload: payload}

	var ok bool
	if req.MarksPath, ok = job.GetPayloadString(models.PayloadMarksPath); !ok || req.MarksPath == "" {
		return req, fmt.Errorf("missing %s", models.PayloadMarksPath)
	}
	if req.SourcePath, ok = job.GetPayloadString(models.PayloadSourcePath); !ok || req.SourcePath == "" {
		return req, fmt.Errorf("missing %s", models.PayloadSourcePath)
	}
	if req.OutputDir, ok = job.GetPayloadString(models.PayloadOutputDir); !ok || req.OutputDir == "" {
		return req, fmt.Errorf("missing %s", models.PayloadOutputDir)
	}
	req.FragmentExt, _ = job.GetPayloadString(models.PayloadFragmentExt)
	return req, nil
}

// EncodeBatchResult converts a batch result into a job result, adding the summary line
func EncodeBatchResult(res batch.Result) (models.JobResult, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	out := models.JobResult{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out["summary"] = res.Summary()
	return out, nil
}

// DecodeBatchResult reads a batch result back from a completed job
func DecodeBatchResult(result models.JobResult) (batch.Result, error) {
	var res batch.Result
	if result == nil {
		return res, fmt.Errorf("job has no result")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, err
	}
	return res, nil
}

package fragments

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/killallgit/interviewcut/internal/session"
	pkgerrors "github.com/killallgit/interviewcut/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func jobsReady(c *gin.Context, deps *types.Dependencies) bool {
	if deps == nil || deps.JobService == nil {
		types.SendServiceUnavailable(c, "Background jobs are not configured")
		return false
	}
	return true
}

// Enqueue queues a background cut of every closed mark in a marks file
// @Summary Queue a fragment batch
// @Description Source path defaults to the video named in the marks file, output dir to the configured fragments directory. A pending batch for the same marks file is returned instead of a new one.
// @Tags fragments
// @Accept json
// @Produce json
// @Param request body types.FragmentJobRequest true "Batch request"
// @Success 202 {object} types.JobResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/fragments/jobs [post]
func Enqueue(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jobsReady(c, deps) {
			return
		}

		var req types.FragmentJobRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		batchReq := jobs.FragmentBatchRequest{
			InterviewID: req.InterviewID,
			MarksPath:   req.MarksPath,
			SourcePath:  req.SourcePath,
			OutputDir:   req.OutputDir,
			FragmentExt: req.FragmentExt,
		}

		if batchReq.SourcePath == "" || batchReq.InterviewID == "" {
			doc, _, err := marks.ReadDocument(deps.FS(), req.MarksPath)
			if err != nil {
				types.SendError(c, err)
				return
			}
			if batchReq.SourcePath == "" {
				batchReq.SourcePath = doc.VideoFile
			}
			if batchReq.InterviewID == "" {
				batchReq.InterviewID = doc.InterviewID
			}
		}
		if batchReq.OutputDir == "" && deps.Config != nil {
			batchReq.OutputDir = session.FragmentsPath(deps.Config.Storage.BaseDir, batchReq.InterviewID)
		}
		if batchReq.FragmentExt == "" && deps.Config != nil {
			batchReq.FragmentExt = deps.Config.Storage.FragmentExt
		}

		job, err := deps.JobService.EnqueueFragmentBatch(c.Request.Context(), batchReq, jobs.WithPriority(req.Priority))
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendAccepted(c, types.JobResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: fmt.Sprintf("Fragment batch %d queued", job.ID)},
			Job:          types.FromJob(job),
		})
	}
}

// List returns recent fragment batches, newest first
// @Summary List fragment batches
// @Tags fragments
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, processing, completed, failed, permanently_failed, cancelled)
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {object} types.JobsResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/fragments/jobs [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jobsReady(c, deps) {
			return
		}

		status := models.JobStatus(c.Query("status"))
		if status != "" && !validStatus(status) {
			types.SendBadRequest(c, "Invalid status")
			return
		}
		limit, ok := types.QueryInt(c, "limit", defaultListLimit)
		if !ok {
			return
		}
		if limit == 0 || limit > maxListLimit {
			limit = maxListLimit
		}

		list, err := deps.JobService.ListJobs(c.Request.Context(), status, limit)
		if err != nil {
			types.SendError(c, pkgerrors.DatabaseError("list jobs", err))
			return
		}

		dtos := types.FromJobList(list)
		types.SendSuccess(c, types.JobsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("%d job(s)", len(dtos))},
			Jobs:         dtos,
			Count:        len(dtos),
		})
	}
}

// Get returns one fragment batch with its per-question outcomes once complete
// @Summary Get a fragment batch
// @Tags fragments
// @Produce json
// @Param id path int true "Job id"
// @Success 200 {object} types.JobResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/fragments/jobs/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !jobsReady(c, deps) {
			return
		}
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		job, err := deps.JobService.GetJob(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		status := types.StatusOK
		switch job.Status {
		case models.JobStatusPending:
			status = types.StatusQueued
		case models.JobStatusProcessing:
			status = types.StatusProcessing
		}
		types.SendSuccess(c, types.JobResponse{
			BaseResponse: types.BaseResponse{Status: status, Message: string(job.Status)},
			Job:          types.FromJob(job),
		})
	}
}

func validStatus(s models.JobStatus) bool {
	switch s {
	case models.JobStatusPending, models.JobStatusProcessing, models.JobStatusCompleted,
		models.JobStatusFailed, models.JobStatusPermanentlyFailed, models.JobStatusCancelled:
		return true
	}
	return false
}

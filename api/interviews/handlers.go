package interviews

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/report"
	pkgerrors "github.com/killallgit/interviewcut/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

var contentTypes = map[report.Format]string{
	report.FormatJSON:     "application/json; charset=utf-8",
	report.FormatMarkdown: "text/markdown; charset=utf-8",
	report.FormatHTML:     "text/html; charset=utf-8",
}

func historyReady(c *gin.Context, deps *types.Dependencies) bool {
	if deps == nil || deps.History == nil {
		types.SendServiceUnavailable(c, "Interview history is not configured")
		return false
	}
	return true
}

// List returns recorded interviews, newest first
// @Summary List recorded interviews
// @Tags interviews
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} types.InterviewsResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/interviews [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !historyReady(c, deps) {
			return
		}
		limit, ok := types.QueryInt(c, "limit", defaultPageSize)
		if !ok {
			return
		}
		if limit == 0 || limit > maxPageSize {
			limit = maxPageSize
		}
		offset, ok := types.QueryInt(c, "offset", 0)
		if !ok {
			return
		}

		records, total, err := deps.History.List(c.Request.Context(), limit, offset)
		if err != nil {
			types.SendError(c, pkgerrors.DatabaseError("list interviews", err))
			return
		}

		list := types.FromInterviewRecordList(records)
		types.SendSuccess(c, types.InterviewsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("%d of %d interview(s)", len(list), total)},
			Interviews:   list,
			Count:        len(list),
			Total:        total,
			Offset:       offset,
		})
	}
}

// Get returns one interview with its fragment outcomes
// @Summary Get a recorded interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview id"
// @Success 200 {object} types.InterviewResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/interviews/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !historyReady(c, deps) {
			return
		}
		rec, err := deps.History.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		interview := types.FromInterviewRecord(rec)
		types.SendSuccess(c, types.InterviewResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: interview.Summary},
			Interview:    interview,
		})
	}
}

// Delete forgets an interview. Files on disk are left in place.
// @Summary Delete a recorded interview
// @Tags interviews
// @Param id path string true "Interview id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/interviews/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !historyReady(c, deps) {
			return
		}
		if err := deps.History.Delete(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Report renders the interview report
// @Summary Render an interview report
// @Description Built from the marks file, or from the recorded fragments when the marks file is gone.
// @Tags interviews
// @Produce json
// @Produce text/markdown
// @Produce text/html
// @Param id path string true "Interview id"
// @Param format query string false "Report format" Enums(json, md, html) default(json)
// @Param download query bool false "Send as an attachment"
// @Success 200 {object} report.Report
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/interviews/{id}/report [get]
func Report(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !historyReady(c, deps) {
			return
		}
		format, err := report.ParseFormat(c.Query("format"))
		if err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		rec, err := deps.History.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		body, err := buildReport(deps, rec).Render(format)
		if err != nil {
			types.SendError(c, err)
			return
		}

		if c.Query("download") == "true" {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(rec.InterviewID, format)))
		}
		c.Data(http.StatusOK, contentTypes[format], body)
	}
}

func buildReport(deps *types.Dependencies, rec *models.InterviewRecord) report.Report {
	if rec.MarksPath != "" {
		if set, err := marks.Load(deps.FS(), rec.MarksPath, ""); err == nil {
			return report.Build(set, rec.StoppedAt)
		}
	}

	closed := make([]marks.ClosedMark, 0, len(rec.Fragments))
	for _, f := range rec.Fragments {
		if f.End == nil {
			continue
		}
		closed = append(closed, marks.ClosedMark{
			InterviewID: rec.InterviewID,
			QuestionID:  f.QuestionID,
			Start:       f.Start,
			End:         *f.End,
		})
	}
	return report.FromClosed(rec.InterviewID, closed, rec.StoppedAt)
}

package sessions

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	sessionsvc "github.com/killallgit/interviewcut/internal/services/sessions"
)

func registryReady(c *gin.Context, deps *types.Dependencies) bool {
	if deps == nil || deps.Sessions == nil {
		types.SendServiceUnavailable(c, "Session recording is not configured")
		return false
	}
	return true
}

// Create prepares a new interview session
// @Summary Create an interview session
// @Description Prepares the directory layout and an empty marks file. The id defaults to YYYY-MM-DD_NNN.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body types.CreateSessionRequest false "Optional interview id"
// @Success 201 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Session already exists"
// @Router /api/v1/sessions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}

		var req types.CreateSessionRequest
		if c.Request.ContentLength != 0 && !types.BindJSONOrError(c, &req) {
			return
		}

		info, err := deps.Sessions.Create(req.InterviewID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Session created"},
			Session:      info,
		})
	}
}

// List returns every live session
// @Summary List live sessions
// @Tags sessions
// @Produce json
// @Success 200 {object} types.SessionsResponse
// @Router /api/v1/sessions [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		all := deps.Sessions.List()
		types.SendSuccess(c, types.SessionsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("%d session(s)", len(all))},
			Sessions:     all,
			Count:        len(all),
		})
	}
}

// Get returns one session, including the summary once stopped
// @Summary Get a session
// @Description Poll this after a stop: state is "stopping" while fragments are cut.
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 200 {object} types.SessionResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		info, err := deps.Sessions.Get(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		status := types.StatusOK
		if info.State == sessionsvc.StateStopping {
			status = types.StatusProcessing
		}
		types.SendSuccess(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: status, Message: string(info.State)},
			Session:      info,
		})
	}
}

// Start begins recording
// @Summary Start recording
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 200 {object} types.SessionResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Already started"
// @Failure 502 {object} types.ErrorResponse "Capture device failed"
// @Router /api/v1/sessions/{id}/start [post]
func Start(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		info, err := deps.Sessions.Start(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Recording started"},
			Session:      info,
		})
	}
}

// StartQuestion opens a mark at the current recording offset
// @Summary Mark a question start
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 201 {object} types.QuestionStartedResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Not recording or overlapping question"
// @Router /api/v1/sessions/{id}/questions [post]
func StartQuestion(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		id := c.Param("id")
		qid, err := deps.Sessions.StartQuestion(id)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendCreated(c, types.QuestionStartedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("Question %d started", qid)},
			InterviewID:  id,
			QuestionID:   qid,
		})
	}
}

// EndQuestion closes the open mark of a question
// @Summary Mark a question end
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Interview id"
// @Param qid path int true "Question id"
// @Param request body types.EndQuestionRequest false "Optional note"
// @Success 200 {object} types.BaseResponse
// @Failure 400 {object} types.ErrorResponse "End not after start"
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Already closed or overlapping"
// @Router /api/v1/sessions/{id}/questions/{qid}/end [post]
func EndQuestion(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		qid, ok := types.ParseIntParam(c, "qid")
		if !ok {
			return
		}
		var req types.EndQuestionRequest
		if c.Request.ContentLength != 0 && !types.BindJSONOrError(c, &req) {
			return
		}

		if err := deps.Sessions.EndQuestion(c.Param("id"), qid, req.Note); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("Question %d ended", qid)})
	}
}

// Stop ends the recording and cuts fragments in the background
// @Summary Stop recording
// @Description Returns immediately with state "stopping". Poll the session for progress and the summary.
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 202 {object} types.SessionResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Not recording"
// @Router /api/v1/sessions/{id}/stop [post]
func Stop(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		info, err := deps.Sessions.Stop(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendAccepted(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusProcessing, Message: "Recording stopped, cutting fragments"},
			Session:      info,
		})
	}
}

// Marks returns the saved marks of a session
// @Summary Get session marks
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 200 {object} types.MarksResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/marks [get]
func Marks(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		doc, err := deps.Sessions.Marks(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.MarksResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("%d mark(s)", len(doc.Marks))},
			Marks:        doc,
		})
	}
}

// Delete forgets a session that is not recording
// @Summary Remove a session
// @Description Files on disk are kept. Recording or stopping sessions cannot be removed.
// @Tags sessions
// @Produce json
// @Param id path string true "Interview id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registryReady(c, deps) {
			return
		}
		if err := deps.Sessions.Remove(c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

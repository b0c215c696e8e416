package questions

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/questions"
)

func catalogReady(c *gin.Context, deps *types.Dependencies) bool {
	if deps == nil || deps.Questions == nil {
		types.SendServiceUnavailable(c, "Question catalog is not configured")
		return false
	}
	return true
}

// List returns the question catalog
// @Summary List interview questions
// @Tags questions
// @Produce json
// @Success 200 {object} types.QuestionsResponse
// @Router /api/v1/questions [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !catalogReady(c, deps) {
			return
		}
		sendCatalog(c, deps.Questions.Categories(), deps.Questions.Total())
	}
}

// GetCategory returns the questions of one category
// @Summary Get a question category
// @Tags questions
// @Produce json
// @Param category path string true "Category name, case insensitive"
// @Success 200 {object} types.QuestionsResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/questions/{category} [get]
func GetCategory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !catalogReady(c, deps) {
			return
		}
		cat, err := deps.Questions.Category(c.Param("category"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		sendCatalog(c, []questions.Category{cat}, len(cat.Questions))
	}
}

// Add appends a question to a category and persists the catalog file when one is configured
// @Summary Add a question
// @Tags questions
// @Accept json
// @Produce json
// @Param category path string true "Category name, case insensitive"
// @Param request body types.AddQuestionRequest true "Question"
// @Success 201 {object} types.QuestionsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/questions/{category} [post]
func Add(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !catalogReady(c, deps) {
			return
		}
		var req types.AddQuestionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		name := c.Param("category")
		if err := deps.Questions.Add(name, req.Question); err != nil {
			types.SendError(c, err)
			return
		}
		if err := persist(deps); err != nil {
			types.SendError(c, err)
			return
		}

		cat, err := deps.Questions.Category(name)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendCreated(c, types.QuestionsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("Question added to %s", cat.Name)},
			Categories:   types.FromCategories([]questions.Category{cat}),
			Total:        len(cat.Questions),
		})
	}
}

// Remove deletes a question by its zero-based position
// @Summary Remove a question
// @Tags questions
// @Produce json
// @Param category path string true "Category name, case insensitive"
// @Param index path int true "Zero-based question index"
// @Success 200 {object} types.QuestionsResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/questions/{category}/{index} [delete]
func Remove(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !catalogReady(c, deps) {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			types.SendBadRequest(c, "Invalid index")
			return
		}

		name := c.Param("category")
		if err = deps.Questions.Remove(name, index); err != nil {
			types.SendError(c, err)
			return
		}
		if err := persist(deps); err != nil {
			types.SendError(c, err)
			return
		}

		cat, err := deps.Questions.Category(name)
		if err != nil {
			types.SendError(c, err)
			return
		}
		sendCatalog(c, []questions.Category{cat}, len(cat.Questions))
	}
}

func persist(deps *types.Dependencies) error {
	if deps.Config == nil || deps.Config.Questions.File == "" {
		return nil
	}
	return deps.Questions.Export(deps.FS(), deps.Config.Questions.File)
}

func sendCatalog(c *gin.Context, categories []questions.Category, total int) {
	types.SendSuccess(c, types.QuestionsResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: fmt.Sprintf("%d question(s)", total)},
		Categories:   types.FromCategories(categories),
		Total:        total,
	})
}

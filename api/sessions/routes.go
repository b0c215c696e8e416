package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// RegisterRoutes registers interview session routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Create(deps))
	router.GET("", List(deps))
	router.GET("/:id", Get(deps))
	router.DELETE("/:id", Delete(deps))

	// Recording control
	router.POST("/:id/start", Start(deps))
	router.POST("/:id/questions", StartQuestion(deps))
	router.POST("/:id/questions/:qid/end", EndQuestion(deps))
	router.POST("/:id/stop", Stop(deps))
	router.GET("/:id/marks", Marks(deps))
}

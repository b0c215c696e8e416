package interviews

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// RegisterRoutes registers interview history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.GET("/:id", Get(deps))
	router.DELETE("/:id", Delete(deps))
	router.GET("/:id/report", Report(deps))
}

package fragments

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// RegisterRoutes registers background fragment batch routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/jobs", Enqueue(deps))
	router.GET("/jobs", List(deps))
	router.GET("/jobs/:id", Get(deps))
}

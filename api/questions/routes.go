package questions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// RegisterRoutes registers question catalog routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.GET("/:category", GetCategory(deps))
	router.POST("/:category", Add(deps))
	router.DELETE("/:category/:index", Remove(deps))
}

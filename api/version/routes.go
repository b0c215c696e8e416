package version

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	var build types.BuildInfo
	if deps != nil {
		build = deps.Build
	}
	engine.GET("/", Get(build))
	engine.GET("/version", Get(build))
}

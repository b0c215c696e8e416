package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// Get handles version requests
// @Summary      Version
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /version [get]
func Get(build types.BuildInfo) gin.HandlerFunc {
	version := build.Version
	if version == "" {
		version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "interviewcut",
			"version":     version,
			"commit":      build.GitCommit,
			"buildTime":   build.BuildTime,
			"description": "Interview recording and question fragment API",
			"status":      "running",
		})
	}
}

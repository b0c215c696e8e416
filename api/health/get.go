package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports database and worker pool status
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		db := getDatabaseStatus(deps)
		response["database"] = db
		if db["status"] == "unhealthy" {
			status = http.StatusServiceUnavailable
			response["status"] = "degraded"
		}

		response["workers"] = getWorkerStatus(deps)

		if deps != nil && deps.Sessions != nil {
			response["sessions"] = len(deps.Sessions.List())
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

func getWorkerStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.WorkerPool == nil {
		return gin.H{"status": "not configured"}
	}
	if !deps.WorkerPool.Started() {
		return gin.H{"status": "stopped", "size": deps.WorkerPool.Size()}
	}
	return gin.H{"status": "running", "size": deps.WorkerPool.Size()}
}

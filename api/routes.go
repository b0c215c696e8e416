package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/interviewcut/api/fragments"
	"github.com/killallgit/interviewcut/api/health"
	"github.com/killallgit/interviewcut/api/interviews"
	"github.com/killallgit/interviewcut/api/questions"
	"github.com/killallgit/interviewcut/api/sessions"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/api/version"
	_ "github.com/killallgit/interviewcut/docs/swagger"
	pkgerrors "github.com/killallgit/interviewcut/pkg/errors"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return errors.New("dependencies are required")
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.Group("/docs").GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")
	if deps.Config != nil && deps.Config.RateLimit.Enabled {
		rl := deps.Config.RateLimit
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rl.RequestsPerMinute, rl.Burst))
	}

	sessions.RegisterRoutes(v1.Group("/sessions"), deps)
	fragments.RegisterRoutes(v1.Group("/fragments"), deps)
	interviews.RegisterRoutes(v1.Group("/interviews"), deps)
	questions.RegisterRoutes(v1.Group("/questions"), deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "The requested endpoint was not found",
			Error:   string(pkgerrors.ErrCodeNotFound),
			Details: gin.H{"path": c.Request.URL.Path},
		})
	}
}

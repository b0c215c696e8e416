package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/pkg/config"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	cfg                *config.Config
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server from the server section of cfg
func NewServer(cfg *config.Config, deps *types.Dependencies) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.Config == nil {
		deps.Config = cfg
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	sc := cfg.Server
	maxHeader := sc.MaxHeaderBytes
	if maxHeader <= 0 {
		maxHeader = 1 << 20
	}

	return &Server{
		engine:       engine,
		cfg:          cfg,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", sc.Host, sc.Port),
			Handler:        engine,
			ReadTimeout:    durationOr(sc.ReadTimeout, defaultReadTimeout),
			WriteTimeout:   durationOr(sc.WriteTimeout, defaultWriteTimeout),
			IdleTimeout:    defaultIdleTimeout,
			MaxHeaderBytes: maxHeader,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return s.setupRoutes()
}

func (s *Server) setupMiddleware() {
	s.engine.Use(RequestLogger(logging.OrDiscard(s.dependencies.Logger).WithField("component", "http")))
	if s.cfg.Security.EnableCORS {
		s.engine.Use(CORS(s.cfg.Security))
	}
	s.engine.Use(RequestSizeLimitWithSize(s.cfg.Server.MaxBodyBytes))
}

func (s *Server) setupRoutes() error {
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.cleanupStop) })
	return s.httpServer.Shutdown(ctx)
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := NewServer(cfg, &types.Dependencies{
		Build:     types.BuildInfo{Version: "1.2.3"},
		Questions: questions.Default(),
	})
	require.NoError(t, srv.Initialize())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func TestNewServerDefaults(t *testing.T) {
	srv := NewServer(&config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 9090, WriteTimeout: 5 * time.Minute}}, nil)

	assert.Equal(t, "127.0.0.1:9090", srv.Addr())
	assert.Equal(t, 5*time.Minute, srv.httpServer.WriteTimeout)
	assert.Equal(t, defaultReadTimeout, srv.httpServer.ReadTimeout)
	assert.Equal(t, 1<<20, srv.httpServer.MaxHeaderBytes)
	assert.NotNil(t, srv.dependencies.Config)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodGet, "/docs", http.StatusMovedPermanently},
		{http.MethodGet, "/api/v1/questions", http.StatusOK},
		{http.MethodGet, "/api/v1/sessions", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/interviews", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/fragments/jobs", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestNotFoundBody(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error)
}

func TestRateLimitedAPI(t *testing.T) {
	srv := newTestServer(t, &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1},
	})

	codes := []int{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		srv.Engine().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code, "health is not rate limited")
}

func TestCORSEnabledByConfig(t *testing.T) {
	srv := newTestServer(t, &config.Config{Security: config.SecurityConfig{EnableCORS: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/questions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownTwice(t *testing.T) {
	srv := NewServer(&config.Config{}, nil)
	ctx := context.Background()
	assert.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, srv.Shutdown(ctx))
}

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/pkg/config"
	pkgerrors "github.com/killallgit/interviewcut/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		cfg             config.SecurityConfig
		method          string
		origin          string
		expectedStatus  int
		expectedHeaders map[string]string
	}{
		{
			name:           "preflight request",
			method:         http.MethodOptions,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusNoContent,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, DELETE, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type, Authorization",
			},
		},
		{
			name:           "regular GET request",
			method:         http.MethodGet,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		},
		{
			name: "allowed origin is echoed",
			cfg: config.SecurityConfig{
				CORSOrigins: []string{"http://localhost:5173"},
				CORSMethods: []string{"GET", "POST"},
			},
			method:         http.MethodGet,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "http://localhost:5173",
				"Access-Control-Allow-Methods": "GET, POST",
				"Vary":                         "Origin",
			},
		},
		{
			name:           "unknown origin gets no allow header",
			cfg:            config.SecurityConfig{CORSOrigins: []string{"http://localhost:5173"}},
			method:         http.MethodGet,
			origin:         "https://evil.example",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			router.Use(CORS(tt.cfg))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, w.Header().Get(header), "Header: %s", header)
			}
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		limit          int64
		bodySize       int
		expectedStatus int
	}{
		{"small request under limit", 0, 100, http.StatusOK},
		{"request at limit", 0, 1024 * 1024, http.StatusOK},
		{"large request over limit", 0, 2 * 1024 * 1024, http.StatusRequestEntityTooLarge},
		{"under custom limit", 512, 256, http.StatusOK},
		{"over custom limit", 512, 1024, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			if tt.limit > 0 {
				router.Use(RequestSizeLimitWithSize(tt.limit))
			} else {
				router.Use(RequestSizeLimit())
			}
			router.POST("/test", func(c *gin.Context) {
				body, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"received": len(body)})
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			req.Header.Set("Content-Type", "text/plain")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequestSizeLimitUnknownLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestSizeLimitWithSize(16))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("a", 64))))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, "streamed bodies are capped while reading")
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		requestCount      int
		requestsPerMinute int
		burstSize         int
		expectSomeBlocked bool
	}{
		{"requests under burst", 3, 60, 5, false},
		{"burst exhausted", 6, 60, 3, true},
		{"single request burst", 2, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateLimiters := &sync.Map{}
			cleanupStop := make(chan struct{})
			defer close(cleanupStop)
			cleanupInitialized := &sync.Once{}

			router := gin.New()
			router.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, tt.requestsPerMinute, tt.burstSize))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			successCount, blockedCount := 0, 0
			for i := 0; i < tt.requestCount; i++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = "127.0.0.1:12345"
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
					assert.Contains(t, w.Body.String(), "API_RATE_LIMIT")
					assert.Contains(t, w.Body.String(), `"resource":"127.0.0.1"`)
				}
			}

			if tt.expectSomeBlocked {
				assert.Greater(t, blockedCount, 0, "Expected some requests to be blocked")
			} else {
				assert.Equal(t, 0, blockedCount, "Expected no requests to be blocked")
				assert.Equal(t, tt.requestCount, successCount)
			}
		})
	}
}

func TestPerClientRateLimit_DifferentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)

	router := gin.New()
	router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, 1, 1))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEvictIdleLimiters(t *testing.T) {
	now := time.Now()
	rateLimiters := &sync.Map{}
	rateLimiters.Store("stale", &clientLimiter{lastSeen: now.Add(-2 * time.Hour)})
	rateLimiters.Store("fresh", &clientLimiter{lastSeen: now.Add(-time.Minute)})

	evictIdleLimiters(rateLimiters, now, 10*time.Minute)

	_, stale := rateLimiters.Load("stale")
	_, fresh := rateLimiters.Load("fresh")
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusConflict) })
	router.GET("/db", func(c *gin.Context) {
		types.SendError(c, pkgerrors.DatabaseError("list jobs", errors.New("database is closed")))
	})

	for _, path := range []string{"/ok", "/bad", "/db"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	assert.Contains(t, out, `"path":"/ok"`)
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"status":409`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"error_code":"DATABASE_QUERY"`)
	assert.Contains(t, out, `"level":"error"`)
}

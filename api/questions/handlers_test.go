package questions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/interviewcut/api/types"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, catalogFile string) (*gin.Engine, afero.Fs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := afero.NewMemMapFs()
	deps := &types.Dependencies{
		Fs:     fs,
		Config: &config.Config{Questions: config.QuestionsConfig{File: catalogFile}},
		Questions: questions.New([]questions.Category{
			{Name: "General", Questions: []string{"How familiar are you with phones?"}},
			{Name: "Closing", Questions: []string{"Anything else?", "Would you use it?"}},
		}),
	}
	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/questions"), deps)
	return engine, fs
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeCatalog(t *testing.T, w *httptest.ResponseRecorder) types.QuestionsResponse {
	t.Helper()
	var resp types.QuestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestListAndCategory(t *testing.T) {
	engine, _ := setupRouter(t, "")

	w := serve(engine, http.MethodGet, "/api/v1/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCatalog(t, w)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "General", resp.Categories[0].Name)

	w = serve(engine, http.MethodGet, "/api/v1/questions/closing", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeCatalog(t, w)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Closing", resp.Categories[0].Name)
	assert.Equal(t, 2, resp.Total)

	w = serve(engine, http.MethodGet, "/api/v1/questions/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPersistsCatalog(t *testing.T) {
	engine, fs := setupRouter(t, "/config/questions.yaml")

	w := serve(engine, http.MethodPost, "/api/v1/questions/General", `{"question":"Do you share a phone?"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeCatalog(t, w)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, []string{"How familiar are you with phones?", "Do you share a phone?"}, resp.Categories[0].Questions)

	saved, err := questions.Load(fs, "/config/questions.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Total())
}

func TestAddRejections(t *testing.T) {
	engine, _ := setupRouter(t, "")

	tests := []struct {
		name     string
		category string
		body     string
		status   int
	}{
		{"missing question", "General", `{}`, http.StatusBadRequest},
		{"blank question", "General", `{"question":"   "}`, http.StatusBadRequest},
		{"unknown category", "Nope", `{"question":"Why?"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(engine, http.MethodPost, "/api/v1/questions/"+tt.category, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRemove(t *testing.T) {
	engine, _ := setupRouter(t, "")

	w := serve(engine, http.MethodDelete, "/api/v1/questions/Closing/0", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeCatalog(t, w)
	assert.Equal(t, []string{"Would you use it?"}, resp.Categories[0].Questions)

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodDelete, "/api/v1/questions/Closing/5", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodDelete, "/api/v1/questions/Closing/x", "").Code)
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqiv-labs/research-pipeline/internal/aggregate"
	"github.com/arqiv-labs/research-pipeline/internal/config"
	"github.com/arqiv-labs/research-pipeline/internal/provider"
	"github.com/arqiv-labs/research-pipeline/internal/research"
	"github.com/arqiv-labs/research-pipeline/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg = &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
	}

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(t.Context()))

	svc := research.New(aggregate.New(provider.NewRegistry(), 2), nil, nil, nil, nil, st)
	return newRouter(svc)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Research_BadBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/research", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Research_EmptyQuery(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"query": "  "})
	req := httptest.NewRequest(http.MethodPost, "/research", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Research_PromptOnly(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"query": "the printing press", "category": "Concept"})
	req := httptest.NewRequest(http.MethodPost, "/research", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res research.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "the printing press", res.Query)
	assert.NotEmpty(t, res.Response)
	assert.False(t, res.Cached)
}

func TestRouter_SaveListDelete(t *testing.T) {
	router := newTestRouter(t)

	result := research.Result{
		Query:    "the printing press",
		Category: "Concept",
		Depth:    "Detailed Research",
		Response: "body",
	}
	body, _ := json.Marshal(result)

	req := httptest.NewRequest(http.MethodPost, "/research/save", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var saved map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	id, _ := saved["id"].(string)
	require.NotEmpty(t, id)

	// Saving the same key again conflicts.
	req = httptest.NewRequest(http.MethodPost, "/research/save", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/saved", nil)
	req.Header.Set("X-User-ID", "u1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var listing struct {
		Saved []map[string]any `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	assert.Len(t, listing.Saved, 1)

	req = httptest.NewRequest(http.MethodDelete, "/saved/"+id, nil)
	req.Header.Set("X-User-ID", "u1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/saved/"+id, nil)
	req.Header.Set("X-User-ID", "u1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

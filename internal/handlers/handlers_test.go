package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	router := gin.New()
	router.GET("/health", Health)

	w := performRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "servicemap-api", body["service"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["uptime"])
}

func TestImportYAML_RejectsBadEnvelope(t *testing.T) {
	router := gin.New()
	router.POST("/api/import", ImportYAML)

	// Malformed JSON body.
	w := performRequest(router, http.MethodPost, "/api/import", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing the required yaml field.
	w = performRequest(router, http.MethodPost, "/api/import", `{"filename":"map.yaml"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Filename over the limit.
	long := strings.Repeat("x", 257)
	w = performRequest(router, http.MethodPost, "/api/import", `{"yaml":"services: []","filename":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Invalid import request", body["error"])
}

func TestImportYAML_RejectsInvalidDocument(t *testing.T) {
	router := gin.New()
	router.POST("/api/import", ImportYAML)

	payload, err := json.Marshal(gin.H{"yaml": "services: []"})
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/import", string(payload))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "YAML validation failed", body["error"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "At least one service is required")
}

func TestImportYAML_RejectsTabs(t *testing.T) {
	router := gin.New()
	router.POST("/api/import", ImportYAML)

	payload, err := json.Marshal(gin.H{"yaml": "services:\n\t- id: web\n"})
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/import", string(payload))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeJSON(t, w)
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "tab characters")
}

func TestExampleFile_RejectsBadNames(t *testing.T) {
	router := gin.New()
	router.GET("/examples/:filename", ExampleFile)

	for _, name := range []string{"map.yml", "map.txt", "map"} {
		w := performRequest(router, http.MethodGet, "/examples/"+name, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestExampleFile_NotFound(t *testing.T) {
	router := gin.New()
	router.GET("/examples/:filename", ExampleFile)

	w := performRequest(router, http.MethodGet, "/examples/no-such-map.yaml", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Example 'no-such-map.yaml' not found", body["error"])
}

func TestExampleFile_ServesBundledFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "examples"), 0o755))
	content := "services:\n  - id: web\n    name: Web\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "sample.yaml"), []byte(content), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	router := gin.New()
	router.GET("/examples/:filename", ExampleFile)

	w := performRequest(router, http.MethodGet, "/examples/sample.yaml", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `"sample.yaml"`)
}

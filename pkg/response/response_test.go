package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, method string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, "/x", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/x", nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWithResults(t *testing.T) {
	w := perform(t, http.MethodGet, func(c *gin.Context) {
		WithResults(c, http.StatusOK, "users-list", gin.H{"users": []string{}})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(http.StatusOK), body["code"])
	assert.Equal(t, "GET", body["request-method"])
	assert.Equal(t, "users-list", body["results-for"])
	assert.Contains(t, body, "results")
}

func TestWithoutResults(t *testing.T) {
	w := perform(t, http.MethodDelete, func(c *gin.Context) {
		WithoutResults(c, http.StatusOK, "some-id")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "DELETE", body["request-method"])
	assert.Equal(t, "some-id", body["request-ressource-id"])
	assert.NotContains(t, body, "results")
}

func TestCreatedSetsLocationAnd201(t *testing.T) {
	w := perform(t, http.MethodPost, func(c *gin.Context) {
		Created(c, "new-id", "/admin/api/users/new-id")
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/admin/api/users/new-id", w.Header().Get("Location"))
	body := decode(t, w)
	assert.Equal(t, float64(http.StatusCreated), body["code"])
	assert.Equal(t, "new-id", body["request-ressource-id"])
}

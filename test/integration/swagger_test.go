package integration_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	_ "jobboard_backend/docs"
	"jobboard_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

// TestSwaggerDocs - doc.json отдается и описывает каждый маршрут API
func TestSwaggerDocs(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithSwagger())

	res := ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)

	var doc struct {
		Swagger string                                `json:"swagger"`
		Paths   map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Body), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	engine, ok := ts.Server.Config.Handler.(*gin.Engine)
	require.True(t, ok)

	checked := 0
	for _, route := range engine.Routes() {
		if route.Method == http.MethodHead ||
			strings.HasPrefix(route.Path, "/swagger") ||
			strings.HasPrefix(route.Path, "/uploads") {
			continue
		}
		path := ginParam.ReplaceAllString(route.Path, "{$1}")
		methods, found := doc.Paths[path]
		if assert.True(t, found, "нет описания пути %s", path) {
			assert.Contains(t, methods, strings.ToLower(route.Method), "нет метода %s %s", route.Method, path)
		}
		checked++
	}
	assert.Greater(t, checked, 50)
}

func TestSwaggerDisabledByDefault(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res := ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

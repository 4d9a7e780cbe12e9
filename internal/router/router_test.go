package router_test

import (
	"os"
	"testing"

	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routes(r *gin.Engine) []string {
	var paths []string
	for _, route := range r.Routes() {
		paths = append(paths, route.Path)
	}
	return paths
}

func TestGinMode(t *testing.T) {
	os.Setenv("GIN_MODE", "debug")
	defer os.Unsetenv("GIN_MODE")

	_, err := router.Router(v1.Controller{})
	require.Nil(t, err, "Error on router initialization")
	assert.True(t, gin.IsDebugging())
}

func TestRoutes(t *testing.T) {
	r, err := router.Router(v1.Controller{})
	require.Nil(t, err, "Error on router initialization")

	paths := routes(r)
	assert.Contains(t, paths, "/")
	assert.Contains(t, paths, "/version")
	assert.Contains(t, paths, "/metrics")
	assert.Contains(t, paths, "/healthz")
	assert.Contains(t, paths, "/v1/dashboard")
	assert.Contains(t, paths, "/v1/settlements")
	assert.Contains(t, paths, "/v1/shared-expenses/preview")
}

func TestPprofOn(t *testing.T) {
	os.Setenv("ENABLE_PPROF", "true")
	defer os.Unsetenv("ENABLE_PPROF")

	r, err := router.Router(v1.Controller{})
	require.Nil(t, err, "Error on router initialization")

	assert.Contains(t, routes(r), "/debug/pprof/")
}

func TestPprofOff(t *testing.T) {
	r, err := router.Router(v1.Controller{})
	require.Nil(t, err, "Error on router initialization")

	for _, path := range routes(r) {
		assert.NotContains(t, path, "pprof", "pprof routes are registered erroneously! Route: %s", path)
	}
}

// TestCorsSetting checks that setting of CORS works.
// It does not check the actual headers as this is already done in testing of the module.
func TestCorsSetting(t *testing.T) {
	os.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000 https://example.com")
	defer os.Unsetenv("CORS_ALLOW_ORIGINS")

	_, err := router.Router(v1.Controller{})
	assert.Nil(t, err)
}

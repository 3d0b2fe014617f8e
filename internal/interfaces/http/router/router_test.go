package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("society", "/societies")
	group.GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })
	group.GET("/:societyId", func(c *gin.Context) { c.String(http.StatusOK, c.Param("societyId")) })
	group.POST("/:societyId/flats", func(c *gin.Context) { c.Status(http.StatusCreated) })

	NewRouter(engine, WithAPIVersion("v1")).Register(group).Setup()

	t.Run("routes live under the version prefix", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/societies", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "list", w.Body.String())
	})

	t.Run("path parameters resolve", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/societies/abc-123", nil))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("method routing", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/societies/abc-123/flats", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unversioned path misses", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/societies", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("payment", "/payments")
	group.Use(func(c *gin.Context) {
		c.Header("X-Group", group.Name())
		c.Next()
	})
	group.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil))
	assert.Equal(t, "payment", w.Header().Get("X-Group"))
}

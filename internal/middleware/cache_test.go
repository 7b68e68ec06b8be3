package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResponseCache_NilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.GET("/tags", ResponseCache(nil, TagsCacheConfig()), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tags", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCacheKey(t *testing.T) {
	assert.Equal(t, responseCacheKey("/tags", ""), responseCacheKey("/tags", ""))
	assert.NotEqual(t, responseCacheKey("/tags", ""), responseCacheKey("/tags", "page=2"))
	assert.Len(t, responseCacheKey("/tags", ""), 64)
}

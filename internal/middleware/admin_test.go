package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/gin-gonic/gin"
)

func serveWithActor(actor *domain.Actor, guard gin.HandlerFunc) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	if actor != nil {
		r.Use(func(c *gin.Context) {
			SetActor(c, *actor)
			c.Next()
		})
	}
	r.Use(guard)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, c.Request)
	return w.Code
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	code := serveWithActor(&domain.Actor{ID: "u1", Role: domain.RoleAdmin}, RequireRole(domain.RoleAdmin))
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
}

func TestRequireRole_AdminDenied(t *testing.T) {
	code := serveWithActor(&domain.Actor{ID: "u1", Role: domain.RoleEditor}, RequireRole(domain.RoleAdmin))
	if code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", code)
	}
}

func TestRequireRole_AdminNoActor(t *testing.T) {
	code := serveWithActor(nil, RequireRole(domain.RoleAdmin))
	if code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
}

func TestRequireRole_EditorOrAdmin(t *testing.T) {
	guard := RequireRole(domain.RoleAdmin, domain.RoleEditor)

	if code := serveWithActor(&domain.Actor{ID: "u1", Role: domain.RoleEditor}, guard); code != http.StatusOK {
		t.Errorf("editor: expected 200, got %d", code)
	}
	if code := serveWithActor(&domain.Actor{ID: "u1", Role: domain.RoleViewer}, guard); code != http.StatusForbidden {
		t.Errorf("viewer: expected 403, got %d", code)
	}
}

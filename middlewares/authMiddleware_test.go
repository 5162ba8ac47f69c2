package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/middlewares"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/gin-gonic/gin"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.AuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		adminId, _ := utils.GetAdminIdFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"admin": adminId})
	})
	return r
}

func TestAuthMiddleware_MissingTokenIsUnauthorized(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_GarbageTokenIsUnauthorized(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_ValidTokenSetsAdminId(t *testing.T) {
	token, err := utils.JwtGenerate(42, "admin")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"admin":42}` {
		t.Fatalf("body = %s, want {\"admin\":42}", body)
	}
}

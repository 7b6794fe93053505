package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(auth *services.AuthService) *gin.Engine {
	return newGuardedRouterWithLogin(auth, "")
}

func newGuardedRouterWithLogin(auth *services.AuthService, loginURL string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	dashboard := r.Group("/dashboard", RedirectToLogin(auth, loginURL))
	dashboard.GET("/*page", func(c *gin.Context) { c.String(http.StatusOK, "page") })

	api := r.Group("/api", RequireAPIAuth(auth, "/api/auth/login"))
	api.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.GET("/me", func(c *gin.Context) {
		claims := CurrentClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return r
}

func validToken(t *testing.T, auth *services.AuthService) string {
	t.Helper()
	token, err := auth.IssueToken(&models.User{ID: 1, Email: "ops@voyra.test", Role: "admin"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func TestRedirectToLoginWithoutSession(t *testing.T) {
	auth := services.NewAuthService(nil, "k", time.Hour)
	r := newGuardedRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/packages?tab=2", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "/login?callbackUrl=%2Fdashboard%2Fpackages%3Ftab%3D2"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

func TestRedirectToLoginAcceptsCookie(t *testing.T) {
	auth := services.NewAuthService(nil, "k", time.Hour)
	r := newGuardedRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: validToken(t, auth)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAPIAuth(t *testing.T) {
	auth := services.NewAuthService(nil, "k", time.Hour)
	r := newGuardedRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	if w.Code != http.StatusUnauthorized || w.Body.String() != `{"error":"Unauthorized"}` {
		t.Fatalf("expected 401 json, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("login must stay open, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, auth))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"email":"ops@voyra.test"}` {
		t.Fatalf("expected claims in context, got %d %s", w.Code, w.Body.String())
	}
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" || w.Body.String() != "abc-123" {
		t.Fatalf("incoming id not reused: %q", w.Header().Get(RequestIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestRedirectToConfiguredLoginPage(t *testing.T) {
	auth := services.NewAuthService(nil, "k", time.Hour)
	r := newGuardedRouterWithLogin(auth, "https://admin.voyra.test/login")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "https://admin.voyra.test/login?callbackUrl=%2Fdashboard%2F"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/services"
	"ledgerlens/internal/testutil"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	users := services.NewUserService(db)
	audit := services.NewAuditService(db)
	h := NewAuthHandler(users, audit)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	protected := r.Group("/", middleware.AuthMiddleware())
	protected.GET("/auth/me", h.Me)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	testutil.AssertNoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r := newAuthRouter(t)

	register := map[string]string{
		"email":      "flow@acme.test",
		"password":   "password123",
		"first_name": "Alex",
		"last_name":  "Tan",
	}

	t.Run("register", func(t *testing.T) {
		w := postJSON(t, r, "/auth/register", register, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
		}
	})

	t.Run("register_duplicate", func(t *testing.T) {
		w := postJSON(t, r, "/auth/register", register, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	var tokens TokenResponse

	t.Run("login", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", map[string]string{
			"email":    "flow@acme.test",
			"password": "password123",
		}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
		if tokens.AccessToken == "" || tokens.RefreshToken == "" {
			t.Fatal("expected token pair")
		}
	})

	t.Run("login_wrong_password", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", map[string]string{
			"email":    "flow@acme.test",
			"password": "nope-nope-nope",
		}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("me_requires_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("me_with_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}
	})

	t.Run("refresh_rotates_tokens", func(t *testing.T) {
		w := postJSON(t, r, "/auth/refresh", map[string]string{
			"refresh_token": tokens.RefreshToken,
		}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}
	})

	t.Run("refresh_rejects_access_token", func(t *testing.T) {
		w := postJSON(t, r, "/auth/refresh", map[string]string{
			"refresh_token": tokens.AccessToken,
		}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

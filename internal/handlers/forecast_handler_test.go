package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/models"
	"ledgerlens/internal/services"
	"ledgerlens/internal/testutil"
)

func TestForecastEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	transactions := services.NewTransactionService(db)
	h := NewForecastHandler(services.NewForecastService(transactions))

	sales := testutil.CreateTestCategory(t, db, user.ID, "Sales", models.CategoryTypeIncome, nil)
	date := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestTransaction(t, db, user.ID, date, "Invoice 1", 0, 500000, &sales.ID)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/forecast", middleware.AuthMiddleware(), h.Get)

	token, err := middleware.GenerateAccessToken(user.ID, user.Email)
	testutil.AssertNoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("returns_projection", func(t *testing.T) {
		w := get("/forecast")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}
	})

	t.Run("rejects_invalid_horizon", func(t *testing.T) {
		for _, q := range []string{"?days=0", "?days=-5", "?days=9000", "?days=abc"} {
			if w := get("/forecast" + q); w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 for %q, got %d", q, w.Code)
			}
		}
	})

	t.Run("requires_auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/forecast", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

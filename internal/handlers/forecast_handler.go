package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/forecast"
	"ledgerlens/internal/middleware"
	"ledgerlens/internal/services"
)

// maxForecastDays bounds the projection horizon a client can request.
const maxForecastDays = 365

// ForecastHandler serves the cash-flow projection endpoint.
type ForecastHandler struct {
	forecasts services.ForecastService
}

// NewForecastHandler creates a forecast handler.
func NewForecastHandler(forecasts services.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

// Get godoc
// @Summary Project cash flow from the latest transaction date
// @Tags forecast
// @Security BearerAuth
// @Produce json
// @Param days query int false "Projection horizon in days (default 30, max 365)"
// @Success 200 {object} forecast.Result
// @Failure 422 {object} errors.AppError
// @Router /forecast [get]
func (h *ForecastHandler) Get(c *gin.Context) {
	days := forecast.DefaultDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxForecastDays {
			fail(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 1 and 365"))
			return
		}
		days = parsed
	}

	result, err := h.forecasts.GetForecast(middleware.UserID(c), days)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

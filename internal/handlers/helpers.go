// Package handlers contains the HTTP layer: request binding, service
// calls, and response shaping. All error paths go through the error
// middleware via c.Error.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ledgerlens/internal/errors"
)

// fail attaches an error to the context for the error middleware and
// aborts the handler chain.
func fail(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// bindJSON binds the request body, converting binding failures into
// invalid-input errors with the validator's message.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// bindQuery binds query parameters the same way.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		fail(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		fail(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+name))
		return 0, false
	}
	return uint(id), true
}

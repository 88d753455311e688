package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/logger"
)

// ErrorHandler translates errors attached to the gin context into JSON
// responses. AppErrors surface their code and message; anything else is
// masked as an internal error so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("request failed",
					"request_id", c.GetString("request_id"),
					"code", appErr.Code,
					"error", appErr.Internal,
				)
			}
			c.JSON(appErr.StatusCode, gin.H{"error": appErr})
			return
		}

		logger.Get().Errorw("unhandled error",
			"request_id", c.GetString("request_id"),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternalServer})
	}
}

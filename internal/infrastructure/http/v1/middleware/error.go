package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
)

// ErrorHandler transforms errors into the uniform {success:false, error}
// envelope. It is the single place that writes error responses; handlers
// only register errors on the context. Internal errors are logged with their
// cause and surfaced as a generic message, never as raw driver text.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			if retry, ok := appErr.Details["retry_after_seconds"].(int); ok {
				c.Header("Retry-After", strconv.Itoa(retry))
			}

			c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
				Success: false,
				Error:   appErr.Message,
				Code:    appErr.Code,
				Details: appErr.Details,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error",
			"error", err,
		)

		c.JSON(500, dto.ErrorResponse{
			Success: false,
			Error:   "internal server error",
			Code:    apperror.CodeInternal,
			Details: map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors pushed onto the gin context to the standard JSON
// envelope. Denial reasons are logged server-side only; the client sees the
// generic AppError message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		reqID, _ := c.Get(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Reason != "" {
				slog.Info("request denied",
					"path", c.FullPath(),
					"status", appErr.Code,
					"reason", appErr.Reason,
					"request_id", reqID,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		slog.Error("unhandled error",
			"path", c.FullPath(),
			"error", err,
			"request_id", reqID,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

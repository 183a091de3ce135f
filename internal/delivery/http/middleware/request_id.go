package middleware

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID assigns a correlation ID to every request. An incoming
// X-Request-ID is honored so IDs survive the gateway hop; otherwise a fresh
// UUID is generated. The ID ties response envelopes, logs, and audit events
// together.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), id)
		c.Header("X-Request-ID", id)

		// Usecases pull the ID from the request context when emitting audit
		// events, so it has to live on both contexts.
		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

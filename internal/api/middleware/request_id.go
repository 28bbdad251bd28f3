package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the correlation id back to the client
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID stamps every request with a fresh correlation id before any
// handler runs. The id and a logger carrying it travel in the request
// context only; nothing is shared between requests.
func RequestID(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		logger := base.With().Str("request_id", id).Logger()

		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, id)
		ctx = logger.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation id stored by RequestID, or "" when absent
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

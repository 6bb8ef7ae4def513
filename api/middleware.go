package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nemopss/pennywise/backend/logger"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// RequestLogger tags each request with an id, stores a request-scoped logger
// in the request context and logs the outcome once the handler chain is done.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		l := base.With(logger.FieldRequestID, requestID)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		l.Log(c.Request.Context(), level, "HTTP request completed",
			logger.FieldComponent, "http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP())
	}
}

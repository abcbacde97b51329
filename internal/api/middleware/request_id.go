package middleware

import (
	"time"

	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// RequestID propagates the caller's X-Request-Id, or assigns a new one,
// echoes it in the response and logs one access line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(httpclient.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(httpclient.RequestIDHeader, id)

		start := time.Now()
		c.Next()

		logger.WithRequest("http", id).Debugf("%s %s -> %d in %v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an id, echoes it back in the
// X-Request-ID header and writes one completion line per request. The id is
// stored under "request_id" for the response envelope to pick up.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()

		c.Next()

		fullPath := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			fullPath += "?" + q
		}

		log.Printf("%s %s -> %d (%s) client=%s request_id=%s",
			c.Request.Method,
			fullPath,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			c.ClientIP(),
			requestID[:8],
		)

		for _, e := range c.Errors {
			log.Printf("request %s failed: %v", requestID[:8], e.Err)
		}
	}
}

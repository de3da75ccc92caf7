package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one access-log line per request, tagged with the request id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("http %s %s status=%d took=%s request_id=%s ip=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			GetRequestID(c),
			c.ClientIP(),
		)
	}
}

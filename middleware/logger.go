package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request: method, path, status, latency and request id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		prefix := "➡️"
		if status >= 500 {
			prefix = "❌"
		} else if status >= 400 {
			prefix = "⚠️"
		}
		log.Printf("%s %s %s %d %s rid=%s", prefix, c.Request.Method, path, status, time.Since(start), c.GetString(RequestIDKey))
	}
}

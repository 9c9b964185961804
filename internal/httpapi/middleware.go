package httpapi

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID assigns (or forwards) a request ID, grounded in
// Vpanel's RequestIDMiddleware.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request, the way the teacher wraps
// gin.Logger() in main().
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		log.Printf("[http] %s %s %s -> %d (%s) [%s]",
			c.ClientIP(), c.Request.Method, path, c.Writer.Status(),
			time.Since(start), c.GetString("request_id"))
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request body size. Every payload this API accepts is a small
// JSON document (a bill, a tenant record, a room), so the cap mainly guards
// against runaway uploads tying up the server.
//
// Declared Content-Length over the cap is rejected up front with 413; bodies
// streamed without a length are cut off by MaxBytesReader, which surfaces as
// a read error inside the handler's bind call.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REQUEST_TOO_LARGE",
					"message": "Request body exceeds maximum allowed size",
				},
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

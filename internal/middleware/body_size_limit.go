package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContactBodyLimit caps a contact submission; four short text fields never
// come close.
const ContactBodyLimit int64 = 100 * 1024

// BodySizeLimitMiddleware limits the size of request bodies. Reads past the
// limit fail, which handlers treat as unparseable input.
func BodySizeLimitMiddleware(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip for GET, HEAD, OPTIONS requests (no body)
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

		c.Next()
	}
}

package middleware

import (
	"net/http"

	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body at maxBytes. Declared lengths over the cap
// are refused up front with 413; chunked bodies fail while being read and the
// handler maps the *http.MaxBytesError to 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, apperrors.ErrPayloadTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

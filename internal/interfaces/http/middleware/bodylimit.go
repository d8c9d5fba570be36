package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
)

// BodyLimitWithUploads applies maxUpload to multipart requests and maxBody to everything else
func BodyLimitWithUploads(maxBody, maxUpload int64) gin.HandlerFunc {
	body := BodyLimit(maxBody)
	upload := BodyLimit(maxUpload)
	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			upload(c)
			return
		}
		body(c)
	}
}

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// chunked bodies are cut off while reading; handlers map *http.MaxBytesError to 413
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyTooLargeMessage is the detail reported for a body over limit bytes.
func BodyTooLargeMessage(limit int64) string {
	return fmt.Sprintf("Request body must not exceed %d bytes.", limit)
}

// MaxBodyBytes caps request bodies at max bytes. A declared Content-Length
// over the cap is refused up front; chunked bodies fail when decoding reads
// past it. A non-positive max disables the cap.
func MaxBodyBytes(max int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if max <= 0 {
			ctx.Next()
			return
		}

		if ctx.Request.ContentLength > max {
			AbortWithError(ctx, http.StatusRequestEntityTooLarge, "Payload Too Large", BodyTooLargeMessage(max))
			return
		}

		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)

		ctx.Next()
	}
}

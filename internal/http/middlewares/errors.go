package middlewares

import "github.com/gin-gonic/gin"

// RequestIDFrom returns the id assigned by RequestID, falling back to the
// incoming header.
func RequestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	return ctx.GetHeader(requestIDHeader)
}

// AbortWithError writes the API error shape and stops the chain.
func AbortWithError(ctx *gin.Context, status int, title string, details ...string) {
	if details == nil {
		details = []string{}
	}

	ctx.AbortWithStatusJSON(status, gin.H{
		"error":     title,
		"details":   details,
		"requestId": RequestIDFrom(ctx),
	})
}

package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

func SecureHeaders(ctx *gin.Context) {
	h := ctx.Writer.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
	ctx.Next()
}

// RequestID echoes the caller's X-Request-ID or assigns a new one. The value
// is stored on the context under "request_id".
func RequestID(ctx *gin.Context) {
	rid := ctx.GetHeader(RequestIDHeader)
	if rid == "" || len(rid) > 64 {
		rid = uuid.NewString()
	}
	ctx.Set("request_id", rid)
	ctx.Writer.Header().Set(RequestIDHeader, rid)
	ctx.Next()
}

package middlewares

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminSecretHeader = "x-secret"

// AdminSecret guards administrative routes with a shared secret. An empty
// secret locks the routes entirely.
func AdminSecret(secret string) gin.HandlerFunc {
	expected := []byte(secret)
	return func(ctx *gin.Context) {
		provided := []byte(ctx.GetHeader(AdminSecretHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			err := errors.New("access denied")
			log.Printf("Check failed on %s %s: %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		ctx.Next()
	}
}

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/shared/server/respond"
)

// CronAuth gates scheduled-job routes behind a shared bearer secret.
// Requests fail closed when no secret is configured.
func CronAuth(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	return func(c *gin.Context) {
		if secret == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		c.Next()
	}
}

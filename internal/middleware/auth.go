// internal/middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

// AdminTokenHeader carries the backend admin token when the Authorization
// header is taken by console basic auth.
const AdminTokenHeader = "X-Admin-Token"

// ConsoleAuth protects the console with HTTP basic auth against a bcrypt
// hash. An empty hash disables the check.
func ConsoleAuth(user, passwordHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passwordHash == "" {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(username), []byte(user)) != 1 ||
			!utils.CheckPassword(passwordHash, password) {
			c.Header("WWW-Authenticate", `Basic realm="homepage-admin"`)
			lang := utils.GetLangFromContext(c)
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthConsoleForbidden))
			c.Abort()
			return
		}

		c.Set("operator", username)
		c.Next()
	}
}

// BackendToken forwards the caller's backend admin token to the editors
// through the request context. Requests without one fall back to the
// configured token providers.
func BackendToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(AdminTokenHeader))

		if token == "" {
			// Extract token from "Bearer <token>"
			parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = strings.TrimSpace(parts[1])
			}
		}

		if token != "" {
			c.Request = c.Request.WithContext(services.WithToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

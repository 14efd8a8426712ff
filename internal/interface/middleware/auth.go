package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"identity-api/pkg/helpers"
	"identity-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth gates protected routes on a "Authorization: Bearer <token>" header.
// Missing header, wrong scheme, bad signature, expiry and empty-subject
// tokens all collapse into the same 401 body so callers cannot probe which
// check failed.
func Auth(tokens *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil || claims.UserID == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

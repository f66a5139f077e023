package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/menuport/portal-app/utils"
)

// AuthMiddleware validates the bearer token and puts user_id and role
// on the context. Websocket clients may pass the token as ?token=
// since browsers cannot set headers on a ws handshake.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			if q := c.Query("token"); q != "" {
				token = "Bearer " + q
			}
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(token, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(token, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token has been revoked"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}

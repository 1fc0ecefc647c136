package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer token and stores the caller identity
// in the request context. The user id always comes from the token.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		case c.Query("token") != "":
			// Websocket dials cannot set headers from a browser.
			tokenString = c.Query("token")
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		identity, err := utils.ParseJWT(jwtSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Identity returns the authenticated caller stored by AuthMiddleware.
func Identity(c *gin.Context) (utils.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return utils.Identity{}, false
	}
	id, ok := v.(utils.Identity)
	return id, ok
}

package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/utils"
)

const identityKey = "identity"

// AuthMiddleware requires a valid bearer token and stores the verified
// caller identity on the context. The identity carries only the user
// id; role grants are resolved against the database per request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id in token"))
			c.Abort()
			return
		}

		c.Set(identityKey, authz.Identity{UserID: claims.UserID})
		c.Next()
	}
}

// Identity returns the caller identity stored by AuthMiddleware, or the
// anonymous identity when the route ran without it.
func Identity(c *gin.Context) authz.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return authz.Anonymous
	}
	id, ok := v.(authz.Identity)
	if !ok {
		return authz.Anonymous
	}
	return id
}

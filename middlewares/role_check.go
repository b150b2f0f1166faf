package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/utils"
)

// RequireRole rejects callers lacking the named role grant. This gate
// is a UX convenience in front of the store; the store re-checks every
// operation, so bypassing this middleware gains nothing. The response
// is the same generic denial the store produces.
func RequireRole(engine *authz.Engine, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Identity(c)
		if !engine.HasRole(id, role) {
			utils.RespondError(c, http.StatusForbidden, authz.ErrDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

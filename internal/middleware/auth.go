package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/pkg/response"
)

// SessionChecker is the slice of the session manager the guard needs.
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession rejects requests while the terminal has no live session.
// There is nothing to decode here: the gateway runs in the same process
// as the session manager, so a plain status check is the whole guard.
func RequireSession(s SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsAuthenticated() {
			response.Error(c, http.StatusUnauthorized, "Unauthorized: Not logged in")
			return
		}
		c.Next()
	}
}

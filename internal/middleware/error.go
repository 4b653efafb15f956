package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/internal/cart"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

// ErrorHandler maps errors attached to the context onto HTTP statuses.
// Handlers call c.Error(err) and return; the mapping lives here so every
// route reports the taxonomy the same way.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log.Warn("request failed", "path", c.Request.URL.Path, "error", err)

		var se *backend.StatusError
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, backend.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, backend.ErrAuthorizationExpired):
			// The retry-after-refresh already failed and the session
			// manager has logged out; tell the UI to re-authenticate.
			response.Error(c, http.StatusUnauthorized, "Session expired")
		case errors.Is(err, backend.ErrNetwork):
			response.Error(c, http.StatusBadGateway, "POS backend unreachable")
		case errors.As(err, &se):
			response.Error(c, se.StatusCode, se.Message)
		default:
			response.Fail(c, "Internal Server Error")
		}
	}
}

// Recovery is a middleware that recovers from panics and returns a 500 error
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", "error", err, "stack", string(debug.Stack()))
				response.Fail(c, "Internal Server Error")
			}
		}()
		c.Next()
	}
}

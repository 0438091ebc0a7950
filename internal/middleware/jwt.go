// Package middleware provides shared request processing for handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

// identityKey is the context key under which RequireAuth stores the caller's
// identity snapshot.
const identityKey = "identity"

// RequireAuth returns an Echo middleware that validates a Bearer session
// token and stores the embedded identity snapshot in the request context.
// A missing token and an invalid one produce different messages; both are
// 401. Nothing beyond that is revealed about why validation failed.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			c.Set(identityKey, claims)
			return next(c)
		}
	}
}

// Identity returns the identity snapshot stored by RequireAuth, or nil when
// the request was not authenticated.
func Identity(c echo.Context) *utils.IdentityClaims {
	id, _ := c.Get(identityKey).(*utils.IdentityClaims)
	return id
}
